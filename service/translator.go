package service

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/imroc/req/v3"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"googletrans-local/domain"
	"googletrans-local/pkg/gtoken"
)

const (
	translatePath    = "/translate_a/single"
	defaultHost      = "translate.google.com"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultTimeout   = 10 * time.Second
)

type TranslateService interface {
	Translate(ctx context.Context, trReq domain.TranslateRequest) (domain.TranslateResult, error)
	TranslateBatch(ctx context.Context, texts []string, trReq domain.TranslateRequest) ([]domain.TranslateResult, error)
	Close()
}

// Config for NewGoogleTranslateService. Zero values get the defaults
// documented per field; everything is fixed at construction and shared
// read-only by concurrent requests afterwards.
type Config struct {
	ServiceURLs []string        // host names, picked at random per request; default translate.google.com
	Proxies     []string        // proxy URLs, "" meaning direct; default direct only
	UserAgent   string          // request User-Agent header
	Timeout     time.Duration   // whole-exchange timeout per request
	Tokens      gtoken.Provider // integrity token source; default gtoken.NewProvider()
	Logger      *zap.Logger
}

// GoogleTranslateService runs the translate pipeline against the free
// web endpoint: resolve languages, compute the integrity token, build
// the query, pick a host and proxy, GET, decode the loose array body.
type GoogleTranslateService struct {
	hosts   []string
	proxies []string
	clients map[string]*req.Client
	ua      string
	timeout time.Duration
	tokens  gtoken.Provider
	logger  *zap.Logger
}

func NewGoogleTranslateService(cfg Config) (*GoogleTranslateService, error) {
	// Bare host names get the scheme attached once here, so picking an
	// endpoint later is a plain concatenation.
	hosts := lo.Compact(lo.Uniq(lo.Map(cfg.ServiceURLs, func(h string, _ int) string {
		h = strings.TrimSuffix(strings.TrimSpace(h), "/")
		if h != "" && !strings.HasPrefix(h, "http") {
			h = "https://" + h
		}
		return h
	})))
	if len(hosts) == 0 {
		hosts = []string{"https://" + defaultHost}
	}
	proxies := lo.Uniq(cfg.Proxies)
	if len(proxies) == 0 {
		proxies = []string{""}
	}
	s := &GoogleTranslateService{
		hosts:   hosts,
		proxies: proxies,
		clients: make(map[string]*req.Client, len(proxies)),
		ua:      cfg.UserAgent,
		timeout: cfg.Timeout,
		tokens:  cfg.Tokens,
		logger:  cfg.Logger,
	}
	if s.ua == "" {
		s.ua = defaultUserAgent
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	if s.tokens == nil {
		s.tokens = gtoken.NewProvider()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	// One client per pooled proxy, built up front so requests never
	// mutate shared state.
	for _, p := range proxies {
		c, err := s.newClient(p)
		if err != nil {
			return nil, err
		}
		s.clients[p] = c
	}
	return s, nil
}

func (s *GoogleTranslateService) newClient(proxy string) (*req.Client, error) {
	c := req.C().
		SetTimeout(s.timeout).
		SetUserAgent(s.ua)
	if proxy != "" {
		if _, err := url.Parse(proxy); err != nil {
			return nil, fmt.Errorf("proxy %q: %w", proxy, err)
		}
		c.SetProxyURL(proxy)
	}
	return c, nil
}

func (s *GoogleTranslateService) Translate(ctx context.Context, trReq domain.TranslateRequest) (domain.TranslateResult, error) {
	dest := trReq.TargetLang
	if dest == "" {
		dest = "en"
	}
	dest, err := Resolve(dest, RoleDestination)
	if err != nil {
		return domain.TranslateResult{}, err
	}
	src := trReq.SourceLang
	if src == "" {
		src = "auto"
	}
	src, err = Resolve(src, RoleSource)
	if err != nil {
		return domain.TranslateResult{}, err
	}

	// The token hash is CPU-bound; hand it to its own goroutine so it
	// never stalls other pipelines sharing the process.
	var token string
	p := pool.New().WithErrors()
	p.Go(func() error {
		t, err := s.tokens.Token(ctx, trReq.Text)
		if err != nil {
			return fmt.Errorf("compute token: %w", err)
		}
		token = t
		return nil
	})
	if err := p.Wait(); err != nil {
		return domain.TranslateResult{}, err
	}

	host := s.pickHost()
	proxy := trReq.Proxy
	if proxy == "" {
		proxy = s.pickProxy()
	}
	cli, err := s.clientFor(proxy)
	if err != nil {
		return domain.TranslateResult{}, err
	}

	resp, err := cli.R().
		SetContext(ctx).
		SetQueryParamsFromValues(buildParams(trReq.Text, src, dest, token)).
		Get(host + translatePath)
	if err != nil {
		return domain.TranslateResult{}, &domain.TransportError{Host: host, Err: err}
	}
	if resp.IsErrorState() {
		return domain.TranslateResult{}, &domain.TransportError{Host: host, Status: resp.StatusCode}
	}

	d, err := decodeResponse(resp.String(), trReq.Text, dest)
	if err != nil {
		return domain.TranslateResult{}, err
	}
	s.logger.Debug("translated",
		zap.String("host", host),
		zap.String("src", src),
		zap.String("detected", d.Src),
		zap.String("dest", dest))

	return domain.TranslateResult{
		Src:           d.Src,
		Confidence:    d.Confidence,
		Dest:          dest,
		Origin:        trReq.Text,
		Text:          d.Text,
		Pronunciation: d.Pronunciation,
	}, nil
}

// TranslateBatch runs the pipeline once per text, strictly in order,
// stopping at the first failure and returning what completed before it.
// The proxy is picked once so the whole batch leaves through the same
// route.
func (s *GoogleTranslateService) TranslateBatch(ctx context.Context, texts []string, trReq domain.TranslateRequest) ([]domain.TranslateResult, error) {
	proxy := trReq.Proxy
	if proxy == "" {
		proxy = s.pickProxy()
	}
	results := make([]domain.TranslateResult, 0, len(texts))
	for i, text := range texts {
		itemReq := trReq
		itemReq.Text = text
		itemReq.Proxy = proxy
		res, err := s.Translate(ctx, itemReq)
		if err != nil {
			return results, fmt.Errorf("batch item %d: %w", i, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Close drops idle connections held by the pooled clients.
func (s *GoogleTranslateService) Close() {
	for _, c := range s.clients {
		c.GetClient().CloseIdleConnections()
	}
}

func (s *GoogleTranslateService) pickHost() string {
	if len(s.hosts) == 1 {
		return s.hosts[0]
	}
	return s.hosts[rand.Intn(len(s.hosts))]
}

func (s *GoogleTranslateService) pickProxy() string {
	if len(s.proxies) == 1 {
		return s.proxies[0]
	}
	return s.proxies[rand.Intn(len(s.proxies))]
}

func (s *GoogleTranslateService) clientFor(proxy string) (*req.Client, error) {
	if c, ok := s.clients[proxy]; ok {
		return c, nil
	}
	// Explicit per-request proxy outside the pool: a one-off client.
	return s.newClient(proxy)
}

// buildParams assembles the query string. Everything except q/sl/tl/tk
// is a fixed flag the endpoint wants to see from a browser client.
func buildParams(query, src, dest, token string) url.Values {
	return url.Values{
		"client": {"webapp"},
		"sl":     {src},
		"tl":     {dest},
		"hl":     {dest},
		"dt":     {"at", "bd", "ex", "ld", "md", "qca", "rw", "rm", "ss", "t"},
		"ie":     {"UTF-8"},
		"oe":     {"UTF-8"},
		"otf":    {"1"},
		"ssel":   {"0"},
		"tsel":   {"0"},
		"tk":     {token},
		"q":      {query},
	}
}
