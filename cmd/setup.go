package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/ai/gemini"
	"github.com/spigell/resume-screener/internal/document"
	"github.com/spigell/resume-screener/internal/headhunter"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/resume"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/secrets"
	"github.com/spigell/resume-screener/internal/session"
)

// bootstrap builds the logger and the config shared by all commands.
func bootstrap() (*zap.Logger, *Config) {
	logger, err := logger.New(logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("config loaded",
		zap.String("store", config.Store.Backend),
		zap.Bool("ai", config.AI != nil && config.AI.Enabled),
		zap.Int("vocabulary", len(config.Vocabulary)),
	)

	return logger, config
}

func newService(ctx context.Context, config *Config, logger *zap.Logger) (*screening.Service, error) {
	store, err := newStore(ctx, config.Store)
	if err != nil {
		return nil, fmt.Errorf("building session store: %w", err)
	}

	decoder, err := document.New(ctx, document.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("building document decoder: %w", err)
	}

	vocabulary := vocabularyFrom(config)

	options := []screening.Option{
		screening.WithDecoder(decoder),
		screening.WithVocabulary(vocabulary),
		screening.WithLogger(logger),
	}

	if config.AI != nil && config.AI.Enabled {
		extractor, err := newAIExtractor(ctx, config.AI, vocabulary, logger)
		if err != nil {
			logger.Warn("ai extraction disabled", zap.Error(err))
		} else {
			options = append(options, screening.WithExtractor(extractor))
		}
	}

	return screening.New(store, options...), nil
}

func vocabularyFrom(config *Config) resume.Vocabulary {
	if len(config.Vocabulary) == 0 {
		return resume.DefaultVocabulary()
	}
	return resume.NewVocabulary(config.Vocabulary...)
}

func newStore(ctx context.Context, cfg *StoreConfig) (session.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return session.NewMemoryStore(), nil
	case "file":
		return session.NewFileStore(cfg.Dir)
	case "redis":
		if cfg.Redis == nil {
			return nil, errors.New("redis configuration is required for the redis store")
		}
		client, err := session.NewRedisClient(ctx, session.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return session.NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.Redis.TTL)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Backend)
	}
}

func newAIExtractor(ctx context.Context, cfg *AIConfig, vocabulary resume.Vocabulary, log *zap.Logger) (ai.Extractor, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, gemini.Config{
		APIKey:     apiKey,
		Model:      cfg.Gemini.Model,
		MaxRetries: cfg.Gemini.MaxRetries,
		JSON:       true,
	}, log.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries)))
	if err != nil {
		return nil, err
	}

	extractor := gemini.NewExtractor(generator, cfg.Gemini.MaxLogLength,
		logger.WithCommonFields(log, gemini.Provider, generator.Model()))
	extractor.SetPromptOverrides(gemini.PromptOverrides{Vocabulary: vocabulary})

	return extractor, nil
}

func newHeadhunter(config *Config, logger *zap.Logger) (*headhunter.Client, error) {
	token, err := resolveToken(config)
	if err != nil {
		return nil, err
	}

	hh := headhunter.New(logger, token)
	if config.Headhunter != nil && config.Headhunter.UserAgent != "" {
		hh.UserAgent = config.Headhunter.UserAgent
	}
	return hh, nil
}

func resolveToken(config *Config) (string, error) {
	if config == nil {
		return "", errors.New("config is required")
	}

	tokenFile := ""
	if config.Headhunter != nil {
		tokenFile = strings.TrimSpace(config.Headhunter.TokenFile)
	}
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("headhunter.token-file"))
	}

	return secrets.Load(secrets.Source{
		Name: "headhunter token",
		File: tokenFile,
		Env:  "HH_TOKEN",
	})
}

// fetchHeadhunterResume downloads the resume with the given title and renders it as text.
func fetchHeadhunterResume(ctx context.Context, config *Config, logger *zap.Logger, title string) (string, error) {
	hh, err := newHeadhunter(config, logger)
	if err != nil {
		return "", fmt.Errorf("loading headhunter token: %w", err)
	}

	resumes, err := hh.GetMineResumes(ctx)
	if err != nil {
		return "", fmt.Errorf("getting mine resumes: %w", err)
	}

	logger.Info("getting mine resumes", zap.Int("count", resumes.Len()))

	selected := resumes.FindByTitle(title)
	if selected == nil {
		return "", fmt.Errorf("resume with title %q not found, existing titles: %s", title, strings.Join(resumes.Titles(), ", "))
	}

	details, err := hh.GetResumeDetails(ctx, selected.ID)
	if err != nil {
		return "", fmt.Errorf("get resume details: %w", err)
	}

	return details.PlainText()
}

// ingest starts a session from a file path or, when hhTitle is set, from an hh.ru resume.
func ingest(ctx context.Context, svc *screening.Service, config *Config, logger *zap.Logger, path, hhTitle string) (*session.Session, error) {
	if hhTitle == "" {
		return svc.Ingest(ctx, path)
	}

	text, err := fetchHeadhunterResume(ctx, config, logger, hhTitle)
	if err != nil {
		return nil, err
	}
	return svc.IngestText(ctx, "hh.ru:"+hhTitle, text)
}
