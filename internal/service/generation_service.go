package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/certpool/config"
	"github.com/lshigami/certpool/internal/cache"
	"github.com/lshigami/certpool/internal/llm"
	"github.com/lshigami/certpool/internal/monitoring"
	"github.com/lshigami/certpool/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const DefaultGenerateCount = 100

type GenerateParams struct {
	ExamName string
	ExamType string
	Count    int
	Domain   string
	// Preference names the provider to try first.
	Preference string
	// ManusLast moves manus to the end of the order when no preference is given.
	ManusLast bool
	Prompt    string
}

// Batch is the normalized output of the first provider that produced usable records.
type Batch struct {
	Provider string
	Records  []llm.QuestionRecord
	Rejected int
	Dropped  int
}

type GenerationResult struct {
	Created  int
	Skipped  int
	Rejected int
	Dropped  int
	Failed   int
}

type GenerationService interface {
	Generate(ctx context.Context, params GenerateParams) (*Batch, error)
	Persist(ctx context.Context, examID uint, records []llm.QuestionRecord, maxCreate int) (GenerationResult, error)
	// Import normalizes externally supplied records and persists them like generated ones.
	Import(ctx context.Context, examID uint, raws []llm.RawRecord) (GenerationResult, error)
}

type generationService struct {
	providers    map[string]llm.Provider
	questionRepo repository.QuestionRepository
	idCache      cache.QuestionIDCache
	timeout      time.Duration
}

func NewGenerationService(
	providers []llm.Provider,
	questionRepo repository.QuestionRepository,
	idCache cache.QuestionIDCache,
	cfg *config.Config,
) GenerationService {
	byName := make(map[string]llm.Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	timeout := cfg.Generation.ProviderTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &generationService{
		providers:    byName,
		questionRepo: questionRepo,
		idCache:      idCache,
		timeout:      timeout,
	}
}

// order returns the configured providers, preferred one first.
func (s *generationService) order(params GenerateParams) []llm.Provider {
	names := make([]string, 0, len(llm.DefaultOrder)+1)
	if params.Preference != "" {
		names = append(names, params.Preference)
	}
	for _, n := range llm.DefaultOrder {
		if params.ManusLast && params.Preference == "" && n == llm.ProviderManus {
			continue
		}
		names = append(names, n)
	}
	if params.ManusLast && params.Preference == "" {
		names = append(names, llm.ProviderManus)
	}

	seen := make(map[string]bool, len(names))
	ordered := make([]llm.Provider, 0, len(names))
	for _, n := range names {
		p, ok := s.providers[n]
		if !ok || seen[n] || !p.Configured() {
			continue
		}
		seen[n] = true
		ordered = append(ordered, p)
	}
	return ordered
}

type attempt struct {
	provider string
	batch    *Batch
	err      error
}

func (s *generationService) try(ctx context.Context, p llm.Provider, req llm.Request) attempt {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raws, err := p.Generate(callCtx, req)
	if err != nil {
		return attempt{provider: p.Name(), err: fmt.Errorf("%s: %w", p.Name(), err)}
	}

	batch := &Batch{Provider: p.Name()}
	for _, raw := range raws {
		rec, err := llm.Normalize(raw)
		switch {
		case errors.Is(err, llm.ErrMissingText):
			batch.Dropped++
		case err != nil:
			batch.Rejected++
			log.Debug().Err(err).Str("provider", p.Name()).Msg("Rejected generated record")
		default:
			batch.Records = append(batch.Records, rec)
		}
	}
	if len(batch.Records) == 0 {
		return attempt{provider: p.Name(), err: fmt.Errorf("%s: %w: %d records, none usable", p.Name(), llm.ErrMalformedRecord, len(raws))}
	}
	return attempt{provider: p.Name(), batch: batch}
}

func (s *generationService) Generate(ctx context.Context, params GenerateParams) (*Batch, error) {
	providers := s.order(params)
	if len(providers) == 0 {
		return nil, ErrNotConfigured
	}
	if params.Count <= 0 {
		params.Count = DefaultGenerateCount
	}

	req := llm.Request{
		ExamName: params.ExamName,
		ExamType: params.ExamType,
		Count:    params.Count,
		Domain:   params.Domain,
		Prompt:   params.Prompt,
	}

	var errs []error
	for _, p := range providers {
		start := time.Now()
		a := s.try(ctx, p, req)
		if a.err != nil {
			monitoring.GenerationAttempts.WithLabelValues(a.provider, "failure").Inc()
			log.Warn().Err(a.err).Str("provider", a.provider).Dur("elapsed", time.Since(start)).Msg("Question generation provider failed, trying next")
			errs = append(errs, a.err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		monitoring.GenerationAttempts.WithLabelValues(a.provider, "success").Inc()
		monitoring.GenerationRecords.WithLabelValues("rejected").Add(float64(a.batch.Rejected))
		monitoring.GenerationRecords.WithLabelValues("dropped").Add(float64(a.batch.Dropped))
		log.Info().
			Str("provider", a.provider).
			Int("records", len(a.batch.Records)).
			Int("rejected", a.batch.Rejected).
			Int("dropped", a.batch.Dropped).
			Dur("elapsed", time.Since(start)).
			Msg("Questions generated")
		return a.batch, nil
	}
	return nil, &GenerationFailedError{Errs: errs}
}

// Persist stores records one by one. When ctx ends mid-batch it stops and
// returns the counts so far together with ctx's error; rows already written stay.
func (s *generationService) Persist(ctx context.Context, examID uint, records []llm.QuestionRecord, maxCreate int) (GenerationResult, error) {
	var res GenerationResult
	for _, rec := range records {
		if maxCreate > 0 && res.Created >= maxCreate {
			break
		}
		if err := ctx.Err(); err != nil {
			s.finish(examID, &res)
			return res, err
		}

		dup, err := s.questionRepo.FindDuplicate(ctx, examID, rec.Text)
		if err != nil {
			if ctx.Err() != nil {
				s.finish(examID, &res)
				return res, ctx.Err()
			}
			res.Failed++
			log.Error().Err(err).Uint("examID", examID).Msg("Duplicate check failed, record not saved")
			continue
		}
		if dup {
			res.Skipped++
			continue
		}

		q := rec.ToModel(examID)
		if err := s.questionRepo.CreateWithAnswers(ctx, &q); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				res.Skipped++
				continue
			}
			if ctx.Err() != nil {
				s.finish(examID, &res)
				return res, ctx.Err()
			}
			res.Failed++
			log.Error().Err(err).Uint("examID", examID).Msg("Failed to save question")
			continue
		}
		res.Created++
	}

	s.finish(examID, &res)
	return res, nil
}

// finish records metrics and invalidates the exam's identifier cache entry
// once anything was written.
func (s *generationService) finish(examID uint, res *GenerationResult) {
	monitoring.GenerationRecords.WithLabelValues("created").Add(float64(res.Created))
	monitoring.GenerationRecords.WithLabelValues("skipped").Add(float64(res.Skipped))

	if res.Created == 0 {
		return
	}
	// the request context may already be cancelled; the invalidation must still happen
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.idCache.Invalidate(ctx, examID); err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("Failed to invalidate question id cache, entry will expire by TTL")
	}
}

func (s *generationService) Import(ctx context.Context, examID uint, raws []llm.RawRecord) (GenerationResult, error) {
	var (
		records           []llm.QuestionRecord
		rejected, dropped int
	)
	for _, raw := range raws {
		rec, err := llm.Normalize(raw)
		switch {
		case errors.Is(err, llm.ErrMissingText):
			dropped++
		case err != nil:
			rejected++
		default:
			records = append(records, rec)
		}
	}

	res, err := s.Persist(ctx, examID, records, 0)
	res.Rejected += rejected
	res.Dropped += dropped
	monitoring.GenerationRecords.WithLabelValues("rejected").Add(float64(rejected))
	monitoring.GenerationRecords.WithLabelValues("dropped").Add(float64(dropped))
	return res, err
}
