package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"advent-quiz-service/internal/app"
	"advent-quiz-service/internal/config"
	"advent-quiz-service/internal/domain"
	"advent-quiz-service/internal/infra/memory"
	pgloader "advent-quiz-service/internal/infra/postgres"
	redissession "advent-quiz-service/internal/infra/redis"
	sqlitestore "advent-quiz-service/internal/infra/sqlite"
	geminijudge "advent-quiz-service/internal/judge/gemini"
	transport "advent-quiz-service/internal/transport/http"
	"advent-quiz-service/internal/validation"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var loader memory.QuizLoader = memory.NewSharedQuestionLoader(sampleQuestions())
	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		loader = pgloader.NewQuizLoader(pool)
	case cfg.SQLite.Path != "":
		store, err := sqlitestore.Open(cfg.SQLite.Path)
		if err != nil {
			return err
		}
		loader = store
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var quizRepo app.QuizRepository
	if redisClient != nil {
		quizRepo = redissession.NewQuizRepository(redisClient, loader, quizTTL)
	} else {
		quizRepo = memory.NewQuizRepository(loader, quizTTL)
	}

	var store app.SessionRepository
	if redisClient != nil {
		store = redissession.NewSessionStore(redisClient, redisTTL)
	} else {
		store = memory.NewSessionStore()
	}

	registry := validation.NewRegistry(validation.AdventRules())
	seedPersistedRules(ctx, loader, registry)

	var judge validation.Judge
	if cfg.Judge.Enabled {
		judge = geminijudge.New(cfg.Judge.GeminiAPIKey, cfg.Judge.GeminiModel)
		log.Printf("semantic judge enabled (model %s)", cfg.Judge.GeminiModel)
	}
	judgeTimeout := config.TTLDuration(cfg.Judge.Timeout, validation.DefaultJudgeTimeout)
	evaluator := validation.NewEvaluator(registry, judge, cfg.Judge.ConfidenceThreshold, judgeTimeout)

	service := app.NewQuizService(store, quizRepo, evaluator)
	wsHandler := transport.NewWSHandler(service)
	apiHandler := transport.NewAPIHandler(service, cfg.Server.FrontendURL)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	apiHandler.Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting advent quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// seedPersistedRules merges rules stored alongside questions into the
// compiled-in table. Malformed records are skipped so their questions fall
// back to exact comparison or the judge.
func seedPersistedRules(ctx context.Context, loader memory.QuizLoader, registry *validation.Registry) {
	quiz, err := loader.LoadQuiz(ctx, "bootstrap")
	if err != nil {
		log.Printf("no persisted questions at startup: %v", err)
		return
	}
	rules := make(map[int]validation.Rule)
	for _, q := range quiz.Questions {
		if len(q.Rule) == 0 {
			continue
		}
		rule, err := validation.ParseRule(q.Rule)
		if err != nil {
			log.Printf("skipping malformed rule for day %d: %v", q.Day, err)
			continue
		}
		rules[q.Day] = rule
	}
	if len(rules) > 0 {
		registry.Extend(rules)
		log.Printf("loaded %d persisted validation rules", len(rules))
	}
}

// sampleQuestions provides demo quiz content when no backing store is
// configured; production deploys load questions from Postgres or SQLite.
func sampleQuestions() []domain.Question {
	questions := []domain.Question{
		{Day: 1, Prompt: "What is the capital of Sweden?", Answer: "Stockholm"},
		{Day: 2, Prompt: "In what year was the first Christmas card sent?", Answer: "1843"},
		{Day: 3, Prompt: "What type of tree is traditionally used as a Christmas tree in Scandinavia?", Answer: "Spruce"},
		{Day: 4, Prompt: "How many reindeer does Santa Claus have?", Answer: "9"},
		{Day: 5, Prompt: "What is the Swedish word for Christmas?", Answer: "Jul"},
	}
	for day := 6; day <= 24; day++ {
		questions = append(questions, domain.Question{
			Day:    day,
			Prompt: "Sample question. What is 2 + 2?",
			Answer: "4",
		})
	}
	return questions
}
