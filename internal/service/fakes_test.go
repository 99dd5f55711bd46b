package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lshigami/certpool/config"
	"github.com/lshigami/certpool/internal/llm"
	"github.com/lshigami/certpool/internal/model"
	"github.com/lshigami/certpool/internal/repository"
	"gorm.io/gorm"
)

type fakeExamRepo struct {
	mu     sync.Mutex
	exams  map[uint]*model.Exam
	nextID uint
}

func newFakeExamRepo(exams ...model.Exam) *fakeExamRepo {
	r := &fakeExamRepo{exams: map[uint]*model.Exam{}}
	for i := range exams {
		e := exams[i]
		if e.ID == 0 {
			r.nextID++
			e.ID = r.nextID
		} else if e.ID > r.nextID {
			r.nextID = e.ID
		}
		r.exams[e.ID] = &e
	}
	return r
}

func (r *fakeExamRepo) Create(_ context.Context, exam *model.Exam) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.exams {
		if e.Name == exam.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	exam.ID = r.nextID
	exam.CreatedAt = time.Now()
	cp := *exam
	r.exams[exam.ID] = &cp
	return nil
}

func (r *fakeExamRepo) FindByID(_ context.Context, id uint) (*model.Exam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExamRepo) FindActiveByID(ctx context.Context, id uint) (*model.Exam, error) {
	e, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !e.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *fakeExamRepo) sortedActive(examType string) []model.Exam {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Exam
	for _, e := range r.exams {
		if e.IsActive && (examType == "" || e.ExamType == examType) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeExamRepo) FindFirstActiveByType(_ context.Context, examType string) (*model.Exam, error) {
	exams := r.sortedActive(examType)
	if len(exams) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &exams[0], nil
}

func (r *fakeExamRepo) FindActiveByType(_ context.Context, examType string) ([]repository.ExamWithCount, error) {
	var out []repository.ExamWithCount
	for _, e := range r.sortedActive(examType) {
		out = append(out, repository.ExamWithCount{Exam: e})
	}
	return out, nil
}

func (r *fakeExamRepo) FindAllActiveWithQuestionCount(ctx context.Context) ([]repository.ExamWithCount, error) {
	return r.FindActiveByType(ctx, "")
}

func (r *fakeExamRepo) UpsertByName(_ context.Context, exam *model.Exam) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.exams {
		if e.Name == exam.Name {
			exam.ID = id
			cp := *exam
			r.exams[id] = &cp
			return nil
		}
	}
	r.nextID++
	exam.ID = r.nextID
	cp := *exam
	r.exams[exam.ID] = &cp
	return nil
}

type fakeQuestionRepo struct {
	mu            sync.Mutex
	questions     map[uint]model.Question
	nextID        uint
	listIDsCalls  int
	raceDuplicate bool // report a unique violation on create, as a concurrent writer would cause
	createErr     error
	// cancel is called once cancelAfter questions have been created.
	cancelAfter int
	cancel      context.CancelFunc
	created     int
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: map[uint]model.Question{}}
}

// seed adds n questions to examID, each with two answers and A correct.
func (r *fakeQuestionRepo) seed(examID uint, n int) []uint {
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		q := model.Question{
			ExamID:       examID,
			QuestionText: fmt.Sprintf("exam %d seeded question %d", examID, i),
			Difficulty:   model.DifficultyMedium,
			Answers: []model.Answer{
				{Letter: "A", Text: "yes", IsCorrect: true},
				{Letter: "B", Text: "no"},
			},
		}
		if err := r.CreateWithAnswers(context.Background(), &q); err != nil {
			panic(err)
		}
		ids = append(ids, q.ID)
	}
	return ids
}

func (r *fakeQuestionRepo) ListQuestionIDs(_ context.Context, examID uint) ([]uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listIDsCalls++
	var ids []uint
	for id, q := range r.questions {
		if q.ExamID == examID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeQuestionRepo) FindDuplicate(_ context.Context, examID uint, text string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raceDuplicate {
		return false, nil
	}
	hash := model.HashQuestionText(text)
	for _, q := range r.questions {
		if q.ExamID == examID && q.TextHash == hash {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeQuestionRepo) CreateWithAnswers(_ context.Context, question *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if r.raceDuplicate {
		return fmt.Errorf("insert question: %w", gorm.ErrDuplicatedKey)
	}
	if question.TextHash == "" {
		question.TextHash = model.HashQuestionText(question.QuestionText)
	}
	for _, q := range r.questions {
		if q.ExamID == question.ExamID && q.TextHash == question.TextHash {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	question.ID = r.nextID
	for i := range question.Answers {
		question.Answers[i].QuestionID = question.ID
	}
	r.questions[question.ID] = *question
	r.created++
	if r.cancel != nil && r.created == r.cancelAfter {
		r.cancel()
	}
	return nil
}

func (r *fakeQuestionRepo) FindWithAnswersByIDs(_ context.Context, ids []uint) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Question
	for _, id := range ids {
		if q, ok := r.questions[id]; ok {
			out = append(out, q)
		}
	}
	// mimic database order
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeQuestionRepo) CountByExam(_ context.Context, examID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, q := range r.questions {
		if q.ExamID == examID {
			n++
		}
	}
	return n, nil
}

func (r *fakeQuestionRepo) List(_ context.Context, filter repository.QuestionFilter) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Question
	for _, q := range r.questions {
		if filter.ExamID != 0 && q.ExamID != filter.ExamID {
			continue
		}
		if filter.Domain != "" && q.Domain != filter.Domain {
			continue
		}
		if filter.Difficulty != "" && q.Difficulty != filter.Difficulty {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeProvider struct {
	name       string
	configured bool
	err        error
	// records builds the response; nil means count well-formed records.
	records func(req llm.Request) []llm.RawRecord
	calls   int
	lastReq llm.Request
	order   *[]string
}

func (p *fakeProvider) Name() string     { return p.name }
func (p *fakeProvider) Configured() bool { return p.configured }

func (p *fakeProvider) Generate(_ context.Context, req llm.Request) ([]llm.RawRecord, error) {
	p.calls++
	p.lastReq = req
	if p.order != nil {
		*p.order = append(*p.order, p.name)
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.records != nil {
		return p.records(req), nil
	}
	return wellFormed(p.name, req.Count), nil
}

func wellFormed(prefix string, n int) []llm.RawRecord {
	out := make([]llm.RawRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, llm.RawRecord{
			QuestionText: fmt.Sprintf("%s question %d", prefix, i),
			Options: []llm.RawOption{
				{Letter: "A", Text: "first"},
				{Letter: "B", Text: "second"},
			},
			CorrectAnswerLetter: "B",
		})
	}
	return out
}

type failingCache struct {
	getErr, setErr, invalidateErr error
	invalidations                 int
}

func (c *failingCache) Get(context.Context, uint) ([]uint, bool, error) {
	return nil, false, c.getErr
}
func (c *failingCache) Set(context.Context, uint, []uint, time.Duration) error { return c.setErr }
func (c *failingCache) Invalidate(context.Context, uint) error {
	c.invalidations++
	return c.invalidateErr
}
func (c *failingCache) Backend() string { return "failing" }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = time.Hour
	cfg.Pool.PoolSize = 100
	cfg.Pool.ServingSize = 50
	cfg.Generation.ProviderTimeout = 5 * time.Second
	return cfg
}

var errProviderDown = errors.New("provider down")
