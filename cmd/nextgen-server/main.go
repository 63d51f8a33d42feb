package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/way2b1/nextgen-onboarding/internal/comment"
	commentrepo "github.com/way2b1/nextgen-onboarding/internal/comment/repositoryimpl"
	"github.com/way2b1/nextgen-onboarding/internal/config"
	"github.com/way2b1/nextgen-onboarding/internal/event"
	"github.com/way2b1/nextgen-onboarding/internal/eventbus"
	"github.com/way2b1/nextgen-onboarding/internal/flags"
	flagsrepo "github.com/way2b1/nextgen-onboarding/internal/flags/repositoryimpl"
	"github.com/way2b1/nextgen-onboarding/internal/onboarding"
	"github.com/way2b1/nextgen-onboarding/internal/pushnotification"
	"github.com/way2b1/nextgen-onboarding/internal/pushsubscription"
	pushsubrepo "github.com/way2b1/nextgen-onboarding/internal/pushsubscription/repositoryimpl"
	"github.com/way2b1/nextgen-onboarding/internal/storagewatch"
	"github.com/way2b1/nextgen-onboarding/internal/task"
	taskrepo "github.com/way2b1/nextgen-onboarding/internal/task/repositoryimpl"
	"github.com/way2b1/nextgen-onboarding/internal/toast"
	"github.com/way2b1/nextgen-onboarding/pkg/clog"
	"github.com/way2b1/nextgen-onboarding/pkg/storage"

	server "github.com/way2b1/nextgen-onboarding/internal"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load env", "error", err)
		os.Exit(1)
	}

	// Setup logger
	level := env.SlogLevel()
	var handler slog.Handler
	if env.Env == "local" {
		handler = clog.NewHTTPTextHandler(os.Stderr, clog.WithLevel(level))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewAttributesHandler(handler)))

	// Setup storage
	var store storage.Storage
	switch env.StorageEnv.Type {
	case "s3":
		store, err = storage.NewS3Storage(context.Background(), env.StorageEnv.S3Bucket, env.StorageEnv.S3Prefix, env.StorageEnv.S3Region)
		if err != nil {
			slog.Error("failed to create S3 storage", "error", err)
			os.Exit(1)
		}
	case "redis":
		store, err = storage.NewRedisStorage(context.Background(), env.StorageEnv.RedisAddr, env.StorageEnv.RedisPassword, env.StorageEnv.RedisDB, env.StorageEnv.RedisPrefix)
		if err != nil {
			slog.Error("failed to create Redis storage", "error", err)
			os.Exit(1)
		}
	default:
		store, err = storage.NewLocalStorage(env.StorageEnv.BaseDir)
		if err != nil {
			slog.Error("failed to create local storage", "error", err)
			os.Exit(1)
		}
	}

	// Setup event bus
	bus := eventbus.New()

	// Setup repositories
	taskRepo := taskrepo.NewYAMLRepository(store)
	commentRepo := commentrepo.NewYAMLRepository(store)
	flagsRepo := flagsrepo.NewYAMLRepository(store)
	pushSubRepo := pushsubrepo.NewYAMLRepository(store)

	// Setup onboarding
	flagService := flags.NewService(flagsRepo)
	toastQueue := toast.NewQueue(bus)
	engine := onboarding.NewEngine(taskRepo, bus)
	factory := onboarding.NewFactory(taskRepo, bus)
	triggers := onboarding.NewTriggers(engine, toastQueue)
	banner := onboarding.NewBanner(taskRepo, flagService)

	userEnv := config.UserEnvFromEnv(env)
	identity := onboarding.Identity{
		FirstName: userEnv.FirstName,
		LastName:  userEnv.LastName,
		Email:     userEnv.Email,
	}

	// Graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// The onboarding task exists from first boot onward. A storage hiccup
	// here fails open: the server still starts and clients can retry via
	// the ensure endpoint.
	if _, err := factory.EnsureTask(ctx, identity); err != nil {
		slog.Warn("failed to ensure onboarding task", "error", err)
	}

	// Setup servers
	taskServer := task.NewServer(taskRepo, bus, engine, triggers)
	commentServer := comment.NewServer(commentRepo, taskRepo, bus, triggers)
	onboardingServer := onboarding.NewServer(factory, banner, triggers, taskRepo, identity)
	flagsServer := flags.NewServer(flagService)
	eventServer := event.NewServer(bus)

	// Setup push notification
	vapidEnv := config.VAPIDEnvFromEnv(env)
	pushSender := pushnotification.NewSender(pushSubRepo, vapidEnv.VAPIDPublicKey, vapidEnv.VAPIDPrivateKey, vapidEnv.VAPIDContact)
	pushDispatcher := pushnotification.NewDispatcher(bus, pushSender)
	pushServer := pushsubscription.NewServer(pushSubRepo, vapidEnv.VAPIDPublicKey)

	srv := server.NewServer(
		env,
		taskServer,
		commentServer,
		onboardingServer,
		flagsServer,
		eventServer,
		pushServer,
	)

	go pushDispatcher.Start(ctx)

	// Local storage can be mutated by other processes (a second instance or
	// the CLI); watch it so connected clients hear about those changes too.
	if local, ok := store.(*storage.LocalStorage); ok {
		watcher := storagewatch.New(local.BasePath(), bus)
		go func() {
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				slog.Warn("storage watcher stopped", "error", err)
			}
		}()
	}

	go func() {
		if err := srv.ListenAndServe(ctx); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
