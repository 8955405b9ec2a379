package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/entity"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/repository"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/shared/types"
)

// LocalPublisher grava o artefato em disco de forma atômica: escreve em um
// arquivo temporário no mesmo diretório e renomeia por cima do destino. Um
// leitor nunca observa o arquivo pela metade e uma falha deixa o artefato
// anterior intacto.
type LocalPublisher struct {
	path string
}

// NewLocalPublisher cria um publisher para o caminho de destino informado.
func NewLocalPublisher(path string) repository.PublishRepository {
	return &LocalPublisher{path: path}
}

func (p *LocalPublisher) Publish(_ context.Context, report entity.MonetizationReport) (string, error) {
	data, err := encodeReport(report)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: creating output directory %s: %v", types.ErrArtifactWrite, dir, err)
	}

	tmp := fmt.Sprintf("%s.tmp-%d", p.path, os.Getpid())
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrArtifactWrite, err)
	}

	if err := os.Rename(tmp, p.path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("%w: %v", types.ErrArtifactWrite, err)
	}

	return filepath.Abs(p.path)
}

// encodeReport serializa o relatório com indentação de 2 espaços.
// A codificação é determinística: structs preservam a ordem dos campos e
// chaves de mapa são ordenadas pelo encoding/json.
func encodeReport(report entity.MonetizationReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encoding report: %v", types.ErrArtifactWrite, err)
	}
	return append(data, '\n'), nil
}
