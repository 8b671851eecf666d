package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chat-widget/internal/chatapi"
	"chat-widget/internal/config"
	"chat-widget/internal/identity"
	"chat-widget/internal/service"
	"chat-widget/internal/ui"
)

type options struct {
	apiBase  string
	language string
	store    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	// Tras el primer Ctrl-C se restaura el handler por defecto: un segundo Ctrl-C mata el proceso.
	context.AfterFunc(ctx, stop)

	if err := newRootCmd(os.Stdin).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "cli_chat",
		Short: "Chat with the /api/chat backend from the terminal",
		Long: `Opens an interactive chat session against {CHAT_API_BASE}/api/chat.

Type a message and press enter. Type 'salir' or 'exit' to quit.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, in, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.apiBase, "api-base", "", "backend base URL (overrides CHAT_API_BASE)")
	cmd.Flags().StringVar(&opts.language, "language", "", "language sent with each message (overrides CHAT_LANGUAGE)")
	cmd.Flags().StringVar(&opts.store, "client-id-store", "", "file, redis or memory (overrides CLIENT_ID_STORE)")
	return cmd
}

func run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	_ = godotenv.Load()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	clientID, err := identity.Ensure(ctx, store, identity.NewClientID)
	if err != nil {
		return fmt.Errorf("client id: %w", err)
	}

	renderer := ui.NewPromptRenderer(out)
	input := ui.NewLineInput(in)
	client := chatapi.NewHTTPClient(cfg.APIBase, cfg.RequestTimeout, logger)
	session, err := service.NewChatSession(client, renderer, clientID, cfg.Language,
		service.WithInput(input),
		service.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	logger.Debug("chat session ready", zap.String("client_id", clientID), zap.String("api_base", cfg.APIBase))
	fmt.Fprintln(out, "---- Modo Chat (escribe 'salir' para terminar chat) ----")
	lines := newLineReader(input)
	defer lines.Close()
	for {
		fmt.Fprint(out, renderer.Prompt())
		text, err := lines.Next(ctx)
		if ctx.Err() != nil {
			fmt.Fprintln(out)
			return nil
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("leer input: %w", err)
		}
		text = strings.TrimSpace(text)
		if strings.EqualFold(text, "salir") || strings.EqualFold(text, "exit") {
			fmt.Fprintln(out, "Saliendo del chat...")
			return nil
		}
		session.SendText(ctx, "")
	}
}

type lineResult struct {
	text string
	err  error
}

// lineReader lee del input en una goroutine, una linea por pedido, para que
// el loop pueda cortar con ctx aunque stdin siga bloqueado.
type lineReader struct {
	requests chan struct{}
	lines    chan lineResult
}

func newLineReader(input *ui.LineInput) *lineReader {
	lr := &lineReader{
		requests: make(chan struct{}),
		lines:    make(chan lineResult, 1),
	}
	go func() {
		for range lr.requests {
			text, err := input.ReadLine()
			lr.lines <- lineResult{text: text, err: err}
		}
	}()
	return lr
}

func (lr *lineReader) Next(ctx context.Context) (string, error) {
	select {
	case lr.requests <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	select {
	case res := <-lr.lines:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (lr *lineReader) Close() {
	close(lr.requests)
}

func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if opts.apiBase != "" {
		cfg.APIBase = opts.apiBase
	}
	if opts.language != "" {
		cfg.Language = opts.language
	}
	if opts.store != "" {
		cfg.ClientIDStore = opts.store
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (identity.Store, func(), error) {
	noop := func() {}
	switch cfg.ClientIDStore {
	case config.StoreMemory:
		return identity.NewMemoryStore(), noop, nil
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(ctxPing).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("redis ping: %w", err)
		}
		logger.Debug("client id store: redis", zap.String("addr", cfg.RedisAddr))
		return identity.NewRedisStore(client, "chat:"), func() { client.Close() }, nil
	default:
		logger.Debug("client id store: file", zap.String("path", cfg.ClientIDPath))
		return identity.NewFileStore(cfg.ClientIDPath), noop, nil
	}
}
