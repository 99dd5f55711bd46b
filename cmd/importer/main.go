// Command importer seeds the default exams and bulk-loads question files
// through the same persistence path the generation endpoints use.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lshigami/certpool/config"
	"github.com/lshigami/certpool/database"
	"github.com/lshigami/certpool/internal/cache"
	"github.com/lshigami/certpool/internal/dto"
	"github.com/lshigami/certpool/internal/llm"
	"github.com/lshigami/certpool/internal/logger"
	"github.com/lshigami/certpool/internal/model"
	"github.com/lshigami/certpool/internal/repository"
	"github.com/lshigami/certpool/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

var defaultExams = []model.Exam{
	{
		Name:        "AWS Solutions Architect",
		ExamType:    model.ExamTypeSolutionsArchitect,
		Description: "AWS Solutions Architect Associate certification practice exam. Tests knowledge of AWS services, architectures, and best practices.",
	},
	{
		Name:        "AWS Cloud Practitioner",
		ExamType:    model.ExamTypeCloudPractitioner,
		Description: "AWS Cloud Practitioner foundational certification practice exam. Tests basic understanding of AWS cloud concepts.",
	},
	{
		Name:        "AWS Developer Associate",
		ExamType:    model.ExamTypeDeveloper,
		Description: "AWS Developer Associate certification practice exam. Tests knowledge of developing, deploying, and debugging cloud-based applications using AWS.",
	},
}

func main() {
	var (
		files    []string
		examType string
		server   string
		seed     bool
		offline  bool
		timeout  time.Duration
	)
	flags := pflag.NewFlagSet("importer", pflag.ExitOnError)
	flags.StringSliceVarP(&files, "file", "f", nil, "question JSON file(s) to import")
	flags.StringVarP(&examType, "exam-type", "t", "", "exam type to import into (derived from the file name when empty)")
	flags.StringVar(&server, "server", "", "base URL of a running API server to import through, e.g. http://localhost:8080")
	flags.BoolVar(&seed, "seed", false, "create or update the default exams")
	flags.BoolVar(&offline, "offline", false, "write to the database without a shared cache (no server is running)")
	flags.DurationVar(&timeout, "timeout", 5*time.Minute, "overall time limit")
	_ = flags.Parse(os.Args[1:])

	logger.Init()
	if !seed && len(files) == 0 {
		flags.Usage()
		os.Exit(2)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Configure(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var examRepo repository.ExamRepository
	var questionRepo repository.QuestionRepository
	// Exam rows are never cached, so seeding may always go to the database.
	if seed || server == "" {
		db, err := database.NewDatabase(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		if err := db.AutoMigrate(&model.Exam{}, &model.Question{}, &model.Answer{}, &model.Review{}); err != nil {
			log.Fatal().Err(err).Msg("Database migration failed")
		}
		examRepo = repository.NewExamRepository(db)
		questionRepo = repository.NewQuestionRepository(db)
	}

	if seed {
		if err := seedExams(ctx, examRepo); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed exams")
		}
	}
	if len(files) == 0 {
		return
	}

	var imp fileImporter
	if server != "" {
		imp = newAPIImporter(server)
	} else {
		rdb := database.NewRedisClient(cfg)
		if rdb == nil {
			if !offline {
				log.Fatal().Msg("No shared Redis cache: a running server would keep serving its cached question lists. " +
					"Pass --server to import through the API, or --offline if no server is running")
			}
			log.Warn().Msg("Importing without a shared cache; restart any running server to see the new questions")
		} else {
			defer rdb.Close()
		}
		// No providers: the importer only persists records it is given.
		generation := service.NewGenerationService(nil, questionRepo, cache.New(cfg, rdb), cfg)
		imp = &dbImporter{
			exams: examRepo,
			admin: service.NewAdminExamService(examRepo, questionRepo, generation),
		}
	}

	failed := false
	for _, file := range files {
		if err := importFile(ctx, imp, file, examType); err != nil {
			log.Error().Err(err).Str("file", file).Msg("Import failed")
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func seedExams(ctx context.Context, examRepo repository.ExamRepository) error {
	for _, tmpl := range defaultExams {
		exam := tmpl
		exam.TotalQuestions = 50
		exam.TimeLimitMinutes = 90
		exam.PassingScore = 70
		exam.IsActive = true
		if err := examRepo.UpsertByName(ctx, &exam); err != nil {
			return fmt.Errorf("upsert %q: %w", exam.Name, err)
		}
		fmt.Printf("Seeded exam %q (%s)\n", exam.Name, exam.ExamType)
	}
	fmt.Printf("Successfully processed %d exams\n", len(defaultExams))
	return nil
}

// fileImporter loads one decoded question file into the first active exam
// of examType and reports the exam's name with the outcome.
type fileImporter interface {
	importFile(ctx context.Context, examType string, content []byte) (string, *dto.ImportQuestionsResponse, error)
}

type dbImporter struct {
	exams repository.ExamRepository
	admin service.AdminExamService
}

func (d *dbImporter) importFile(ctx context.Context, examType string, content []byte) (string, *dto.ImportQuestionsResponse, error) {
	raws, err := llm.DecodeRecords(string(content))
	if err != nil {
		return "", nil, err
	}
	exam, err := d.exams.FindFirstActiveByType(ctx, examType)
	if err != nil {
		return "", nil, fmt.Errorf("no active exam of type %q: %w", examType, err)
	}
	res, err := d.admin.ImportQuestions(ctx, exam.ID, raws)
	if err != nil {
		return "", nil, err
	}
	return exam.Name, res, nil
}

func importFile(ctx context.Context, imp fileImporter, path, examType string) error {
	if examType == "" {
		examType = examTypeFromFile(path)
		if examType == "" {
			return fmt.Errorf("cannot derive exam type from %q, pass --exam-type", filepath.Base(path))
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	examName, res, err := imp.importFile(ctx, examType, content)
	if err != nil {
		return err
	}
	fmt.Printf("%s: imported %d, skipped %d, rejected %d, dropped %d, failed %d (%d questions in %q)\n",
		filepath.Base(path), res.ImportedCount, res.SkippedCount, res.RejectedCount, res.DroppedCount,
		res.FailedCount, res.TotalQuestions, examName)
	if res.Interrupted {
		return fmt.Errorf("import interrupted after %d questions", res.ImportedCount)
	}
	return nil
}

// examTypeFromFile maps names like developer_100_questions.json to "developer".
func examTypeFromFile(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	types := model.ExamTypes()
	sort.Slice(types, func(i, j int) bool { return len(types[i]) > len(types[j]) })
	for _, t := range types {
		if base == t || strings.HasPrefix(base, t+"_") {
			return t
		}
	}
	return ""
}
