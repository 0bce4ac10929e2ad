package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"advent-quiz-service/internal/app"
	"advent-quiz-service/internal/domain"
	pgloader "advent-quiz-service/internal/infra/postgres"
	pgmigrations "advent-quiz-service/internal/infra/postgres/migrations"
	infraredis "advent-quiz-service/internal/infra/redis"
	"advent-quiz-service/internal/validation"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestSubmitAnswerEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedQuestions(t, ctx, pgURL, sampleQuestions())

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loader := pgloader.NewQuizLoader(pool)

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	quizRepo := infraredis.NewQuizRepository(redisClient, loader, 5*time.Minute)
	sessionStore := infraredis.NewSessionStore(redisClient, 5*time.Minute)
	rules := map[int]validation.Rule{
		2: {Kind: validation.KindNumeric, Accepted: []string{"4"}},
	}
	evaluator := validation.NewEvaluator(validation.NewRegistry(rules), nil, 0, 0)
	service := app.NewQuizService(sessionStore, quizRepo, evaluator)

	quizID, hostID, err := service.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := service.Join(ctx, quizID, "u1", "Alice"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := service.Join(ctx, quizID, "u2", "Bob"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := service.Start(ctx, quizID, hostID); err != nil {
		t.Fatalf("start: %v", err)
	}

	lb, result, err := service.SubmitAnswer(ctx, quizID, "u2", domain.AnswerSubmission{
		Day:    1,
		Answer: "  stockholm ",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Correct || result.Awarded != domain.DefaultPoints || result.TotalScore != domain.DefaultPoints {
		t.Fatalf("expected correct answer, got %+v", result)
	}
	if len(lb.Entries) != 2 || lb.Entries[0].UserID != "u2" {
		t.Fatalf("expected bob leading, got %+v", lb.Entries)
	}

	// Day 2 carries a numeric rule, so the number is extracted from prose.
	_, result, err = service.SubmitAnswer(ctx, quizID, "u1", domain.AnswerSubmission{Day: 2, Answer: "the answer is 4"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Correct || result.Method != string(validation.MethodRuleBased) {
		t.Fatalf("expected rule-based verdict, got %+v", result)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedQuestions(t *testing.T, ctx context.Context, dsn string, questions []domain.Question) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for _, question := range questions {
		data, err := json.Marshal(question)
		if err != nil {
			t.Fatalf("marshal question: %v", err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO questions (day, data) VALUES (?, ?::jsonb) ON CONFLICT (day) DO UPDATE SET data=EXCLUDED.data`, question.Day, string(data)); err != nil {
			t.Fatalf("insert question: %v", err)
		}
	}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{Day: 1, Prompt: "What is the capital of Sweden?", Answer: "Stockholm"},
		{Day: 2, Prompt: "What is 2 + 2?", Answer: "4"},
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
