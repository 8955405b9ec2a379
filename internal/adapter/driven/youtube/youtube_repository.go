package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtubedata "google.golang.org/api/youtube/v3"
	youtubeanalytics "google.golang.org/api/youtubeanalytics/v2"

	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/entity"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/domain/repository"
	"github.com/everydayham/youtube-monetization-dashboard-go/internal/shared/types"
)

// Número total de tentativas para erros transientes (1 inicial + 2 retries).
const maxRetries = 2

// AnalyticsRepositoryImpl implementa o AnalyticsRepository com cache de clientes.
type AnalyticsRepositoryImpl struct {
	creds    entity.CredentialBundle
	currency string

	mu           sync.Mutex
	analyticsSvc *youtubeanalytics.Service
	dataSvc      *youtubedata.Service
}

// NewAnalyticsRepository cria uma nova implementação do AnalyticsRepository.
func NewAnalyticsRepository(creds entity.CredentialBundle, currency string) repository.AnalyticsRepository {
	if currency == "" {
		currency = "USD"
	}
	return &AnalyticsRepositoryImpl{creds: creds, currency: currency}
}

func (r *AnalyticsRepositoryImpl) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     r.creds.ClientID,
		ClientSecret: r.creds.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       entity.Scopes,
	}
}

func (r *AnalyticsRepositoryImpl) analyticsService(ctx context.Context) (*youtubeanalytics.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.analyticsSvc != nil {
		return r.analyticsSvc, nil
	}

	conf := r.oauthConfig()
	token := &oauth2.Token{RefreshToken: r.creds.RefreshToken}
	client := oauth2.NewClient(ctx, conf.TokenSource(ctx, token))

	svc, err := youtubeanalytics.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube Analytics client: %w", err)
	}

	r.analyticsSvc = svc
	return svc, nil
}

func (r *AnalyticsRepositoryImpl) dataService(ctx context.Context) (*youtubedata.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dataSvc != nil {
		return r.dataSvc, nil
	}

	conf := r.oauthConfig()
	token := &oauth2.Token{RefreshToken: r.creds.RefreshToken}
	client := oauth2.NewClient(ctx, conf.TokenSource(ctx, token))

	svc, err := youtubedata.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube Data client: %w", err)
	}

	r.dataSvc = svc
	return svc, nil
}

// queryParams descreve uma consulta ao endpoint reports.query.
type queryParams struct {
	metrics    string
	dimensions string
	sort       string
	maxResults int64
}

// runQuery executa uma consulta com retry limitado para erros transientes.
func (r *AnalyticsRepositoryImpl) runQuery(ctx context.Context, window entity.ReportingWindow, p queryParams) (*youtubeanalytics.QueryResponse, error) {
	svc, err := r.analyticsService(ctx)
	if err != nil {
		return nil, err
	}

	var resp *youtubeanalytics.QueryResponse
	op := func() error {
		call := svc.Reports.Query().
			Ids("channel==MINE").
			StartDate(window.StartDate()).
			EndDate(window.EndDate()).
			Metrics(p.metrics).
			Currency(r.currency)
		if p.dimensions != "" {
			call = call.Dimensions(p.dimensions)
		}
		if p.sort != "" {
			call = call.Sort(p.sort)
		}
		if p.maxResults > 0 {
			call = call.MaxResults(p.maxResults)
		}

		out, err := call.Context(ctx).Do()
		if err != nil {
			classified := classifyAPIError(err)
			if !errors.Is(classified, types.ErrTransientAPI) {
				return backoff.Permanent(classified)
			}
			return classified
		}
		resp = out
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, maxRetries), ctx)); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetCoreMetrics busca as métricas de receita do período.
func (r *AnalyticsRepositoryImpl) GetCoreMetrics(ctx context.Context, window entity.ReportingWindow) (entity.CoreMetrics, error) {
	resp, err := r.runQuery(ctx, window, queryParams{
		metrics: "estimatedRevenue,cpm,monetizedPlaybacks,adImpressions",
	})
	if err != nil {
		return entity.CoreMetrics{}, err
	}

	// Sem linhas significa "sem dados no período", não uma resposta inválida.
	if len(resp.Rows) == 0 {
		return entity.CoreMetrics{}, nil
	}

	row := resp.Rows[0]
	if len(row) < 4 {
		return entity.CoreMetrics{}, fmt.Errorf("%w: expected 4 metric columns, got %d", types.ErrSchema, len(row))
	}

	metrics := entity.CoreMetrics{
		Revenue:            rowFloat(row, 0),
		CPM:                rowFloat(row, 1),
		MonetizedPlaybacks: rowInt(row, 2),
		AdImpressions:      rowInt(row, 3),
	}

	views, err := r.getTotalViews(ctx, window)
	if err != nil {
		return entity.CoreMetrics{}, err
	}
	metrics.Views = views

	return metrics, nil
}

// getTotalViews busca o total de visualizações para o cálculo de RPM.
func (r *AnalyticsRepositoryImpl) getTotalViews(ctx context.Context, window entity.ReportingWindow) (int64, error) {
	resp, err := r.runQuery(ctx, window, queryParams{metrics: "views"})
	if err != nil {
		return 0, err
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0]) == 0 {
		return 0, nil
	}
	return rowInt(resp.Rows[0], 0), nil
}

// GetPreviousPeriodMetrics busca as métricas do período imediatamente anterior.
func (r *AnalyticsRepositoryImpl) GetPreviousPeriodMetrics(ctx context.Context, window entity.ReportingWindow) (entity.CoreMetrics, error) {
	prev := window.Previous()
	resp, err := r.runQuery(ctx, prev, queryParams{
		metrics: "estimatedRevenue,cpm,monetizedPlaybacks,views",
	})
	if err != nil {
		return entity.CoreMetrics{}, err
	}
	if len(resp.Rows) == 0 {
		return entity.CoreMetrics{}, nil
	}

	row := resp.Rows[0]
	if len(row) < 4 {
		return entity.CoreMetrics{}, fmt.Errorf("%w: expected 4 metric columns, got %d", types.ErrSchema, len(row))
	}

	return entity.CoreMetrics{
		Revenue:            rowFloat(row, 0),
		CPM:                rowFloat(row, 1),
		MonetizedPlaybacks: rowInt(row, 2),
		Views:              rowInt(row, 3),
	}, nil
}

// GetDailyRevenue busca a receita diária para o gráfico de tendência.
func (r *AnalyticsRepositoryImpl) GetDailyRevenue(ctx context.Context, window entity.ReportingWindow) ([]entity.DailyRevenue, error) {
	resp, err := r.runQuery(ctx, window, queryParams{
		metrics:    "estimatedRevenue",
		dimensions: "day",
		sort:       "day",
	})
	if err != nil {
		return nil, err
	}

	daily := make([]entity.DailyRevenue, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: daily revenue row has %d columns", types.ErrSchema, len(row))
		}
		daily = append(daily, entity.DailyRevenue{
			Date:    rowString(row, 0),
			Revenue: rowFloat(row, 1),
		})
	}
	return daily, nil
}

// GetAdTypeRevenue busca a receita por tipo de anúncio, nomes já normalizados.
func (r *AnalyticsRepositoryImpl) GetAdTypeRevenue(ctx context.Context, window entity.ReportingWindow) ([]entity.AdTypeRevenue, error) {
	resp, err := r.runQuery(ctx, window, queryParams{
		metrics:    "estimatedRevenue",
		dimensions: "adType",
		sort:       "-estimatedRevenue",
	})
	if err != nil {
		return nil, err
	}

	adTypes := make([]entity.AdTypeRevenue, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: ad type row has %d columns", types.ErrSchema, len(row))
		}
		adTypes = append(adTypes, entity.AdTypeRevenue{
			AdType:  CleanAdTypeName(rowString(row, 0)),
			Revenue: rowFloat(row, 1),
		})
	}
	return adTypes, nil
}

// GetTopEarningVideos busca os vídeos com maior receita no período.
// Os títulos não são preenchidos aqui; veja GetVideoTitles.
func (r *AnalyticsRepositoryImpl) GetTopEarningVideos(ctx context.Context, window entity.ReportingWindow, maxResults int64) ([]entity.VideoEarnings, error) {
	resp, err := r.runQuery(ctx, window, queryParams{
		metrics:    "estimatedRevenue,views",
		dimensions: "video",
		sort:       "-estimatedRevenue",
		maxResults: maxResults,
	})
	if err != nil {
		return nil, err
	}

	videos := make([]entity.VideoEarnings, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("%w: video row has %d columns", types.ErrSchema, len(row))
		}
		videos = append(videos, entity.VideoEarnings{
			VideoID: rowString(row, 0),
			Revenue: rowFloat(row, 1),
			Views:   rowInt(row, 2),
		})
	}
	return videos, nil
}

// GetVideoTitles resolve títulos de vídeos via YouTube Data API.
// Falhas aqui não são fatais para a execução: o chamador usa um título de fallback.
func (r *AnalyticsRepositoryImpl) GetVideoTitles(ctx context.Context, videoIDs []string) (map[string]string, error) {
	if len(videoIDs) == 0 {
		return map[string]string{}, nil
	}

	svc, err := r.dataService(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Videos.List([]string{"snippet"}).Id(videoIDs...).Context(ctx).Do()
	if err != nil {
		return nil, classifyAPIError(err)
	}

	titles := make(map[string]string, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet != nil {
			titles[item.Id] = item.Snippet.Title
		}
	}
	return titles, nil
}

// classifyAPIError mapeia um erro da API para a taxonomia do fetcher.
func classifyAPIError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return classifyStatus(gerr.Code, gerr.Message)
	}
	// Erros sem resposta HTTP (DNS, timeout, conexão) são transientes.
	return fmt.Errorf("%w: %v", types.ErrTransientAPI, err)
}

func classifyStatus(code int, message string) error {
	switch {
	case code == 401:
		return fmt.Errorf("%w: %s", types.ErrAuth, message)
	case code == 403:
		return fmt.Errorf("%w: %s", types.ErrPermission, message)
	case code == 429 || code >= 500:
		return fmt.Errorf("%w: HTTP %d: %s", types.ErrTransientAPI, code, message)
	default:
		return fmt.Errorf("reporting API rejected the request: HTTP %d: %s", code, message)
	}
}

// CleanAdTypeName normaliza um valor da dimensão adType para exibição.
// Ex.: "auction_instream" -> "Auction Instream".
func CleanAdTypeName(adType string) string {
	words := strings.Split(strings.ReplaceAll(adType, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// As linhas da resposta chegam como []interface{}; números decodificam como float64.

func rowFloat(row []interface{}, idx int) float64 {
	if idx >= len(row) || row[idx] == nil {
		return 0
	}
	if v, ok := row[idx].(float64); ok {
		return v
	}
	return 0
}

func rowInt(row []interface{}, idx int) int64 {
	return int64(rowFloat(row, idx))
}

func rowString(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	if v, ok := row[idx].(string); ok {
		return v
	}
	return ""
}
