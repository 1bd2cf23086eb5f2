package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/novakart/storesync/internal/client/api"
	"github.com/novakart/storesync/internal/client/cache"
	"github.com/novakart/storesync/internal/client/connectivity"
	"github.com/novakart/storesync/internal/client/mutation"
	"github.com/novakart/storesync/internal/client/notify"
	"github.com/novakart/storesync/internal/client/queue"
	"github.com/novakart/storesync/internal/client/realtime"
	"github.com/novakart/storesync/internal/client/storage"
	"github.com/novakart/storesync/internal/client/storage/boltdb"
	"github.com/novakart/storesync/internal/client/storage/sqlite"
	"github.com/novakart/storesync/internal/client/store"
	"github.com/novakart/storesync/internal/models"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// clientStorage is the full local persistence surface one backend provides
type clientStorage interface {
	storage.CacheStorage
	storage.QueueStorage
	storage.MetadataStorage
	Close() error
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	token := flag.String("token", "", "API token")
	dbPath := flag.String("db", "storesync.db", "Path to local database")
	backend := flag.String("backend", "bolt", "Local storage backend: bolt or sqlite")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	local, err := openStorage(ctx, *backend, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := local.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	client := api.NewClient(*serverURL, *token)

	tiered, err := cache.NewTiered(local, nil, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build cache: %v\n", err)
		os.Exit(1)
	}

	monitor := connectivity.NewMonitor(client, 0, logger)
	st := store.New(client, tiered, monitor.IsOnline, logger)
	notifier := notify.NewSlogNotifier(logger)
	syncQueue := queue.NewService(local, local, client, st, tiered, monitor, notifier, logger)
	syncQueue.Bind()

	var cmdErr error
	switch args[0] {
	case "fetch":
		cmdErr = runFetch(ctx, client, st, monitor, args[1:])
	case "create", "update", "delete":
		coord := mutation.NewCoordinator(client, st, tiered, syncQueue, monitor, logger)
		cmdErr = runMutate(ctx, client, coord, st, monitor, args[0], args[1:])
	case "status":
		cmdErr = runStatus(ctx, client, st, syncQueue)
	case "drain":
		cmdErr = runDrain(ctx, client, monitor, syncQueue)
	case "watch":
		cmdErr = runWatch(ctx, client, st, monitor, tiered, *serverURL, *token, logger)
	default:
		printUsage()
		os.Exit(1)
	}

	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		os.Exit(1)
	}
}

func openStorage(ctx context.Context, backend, path string) (clientStorage, error) {
	switch backend {
	case "bolt":
		return boltdb.New(ctx, path)
	case "sqlite":
		return sqlite.New(ctx, path)
	default:
		return nil, fmt.Errorf("unknown backend %q, want bolt or sqlite", backend)
	}
}

// collections in the order commands report them
var collections = []models.Collection{
	models.CollectionProducts,
	models.CollectionCategories,
	models.CollectionOrders,
	models.CollectionCustomers,
	models.CollectionStats,
}

func runFetch(ctx context.Context, client *api.Client, st *store.Store, monitor *connectivity.Monitor, args []string) error {
	probe(ctx, client, monitor)

	if len(args) > 0 {
		collection := models.Collection(args[0])
		fetch, err := fetcherFor(st, collection)
		if err != nil {
			return err
		}
		if err := fetch(ctx); err != nil {
			return err
		}
		printCounts(st, collection)
		return nil
	}

	if err := st.FetchAll(ctx, true); err != nil {
		return err
	}
	printCounts(st, collections...)
	return nil
}

func fetcherFor(st *store.Store, collection models.Collection) (func(ctx context.Context) error, error) {
	force := func(f interface {
		Fetch(ctx context.Context, force bool) error
	}) func(ctx context.Context) error {
		return func(ctx context.Context) error { return f.Fetch(ctx, true) }
	}

	switch collection {
	case models.CollectionProducts:
		return force(st.ProductFetcher), nil
	case models.CollectionCategories:
		return force(st.CategoryFetcher), nil
	case models.CollectionOrders:
		return force(st.OrderFetcher), nil
	case models.CollectionCustomers:
		return force(st.CustomerFetcher), nil
	case models.CollectionStats:
		return force(st.StatsFetcher), nil
	default:
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
}

func printCounts(st *store.Store, cols ...models.Collection) {
	for _, collection := range cols {
		switch collection {
		case models.CollectionProducts:
			fmt.Printf("%-16s %d\n", collection, st.Products.Len())
		case models.CollectionCategories:
			fmt.Printf("%-16s %d\n", collection, st.Categories.Len())
		case models.CollectionOrders:
			fmt.Printf("%-16s %d\n", collection, st.Orders.Len())
		case models.CollectionCustomers:
			fmt.Printf("%-16s %d\n", collection, st.Customers.Len())
		case models.CollectionStats:
			if stats, _, ok := st.Stats.Get(string(models.CollectionStats)); ok {
				fmt.Printf("%-16s revenue=%.2f orders=%d\n", collection, stats.TotalRevenue, stats.OrderCount)
			} else {
				fmt.Printf("%-16s -\n", collection)
			}
		}
	}
}

// runMutate refreshes the target collection so the optimistic path works
// against current state, then hands the verb to the coordinator. A write
// that cannot reach the server is queued, not lost.
func runMutate(
	ctx context.Context,
	client *api.Client,
	coord *mutation.Coordinator,
	st *store.Store,
	monitor *connectivity.Monitor,
	verb string,
	args []string,
) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: %s <collection> <record-json|id>", verb)
	}
	probe(ctx, client, monitor)

	collection := models.Collection(args[0])
	if verb != "create" {
		fetch, err := fetcherFor(st, collection)
		if err != nil {
			return err
		}
		if err := fetch(ctx); err != nil {
			return err
		}
	}

	msg, err := dispatchMutation(ctx, coord, verb, collection, args[1])
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func dispatchMutation(ctx context.Context, coord *mutation.Coordinator, verb string, collection models.Collection, arg string) (string, error) {
	var (
		id     string
		queued bool
		err    error
	)

	switch verb {
	case "create":
		id, queued, err = createRecord(ctx, coord, collection, arg)
	case "update":
		id, queued, err = updateRecord(ctx, coord, collection, arg)
	case "delete":
		id = arg
		queued, err = deleteRecord(ctx, coord, collection, arg)
	default:
		return "", fmt.Errorf("unknown command %q", verb)
	}
	if err != nil {
		return "", err
	}

	if queued {
		return fmt.Sprintf("%sd %s %s (queued for replay)", verb, collection, id), nil
	}
	return fmt.Sprintf("%sd %s %s", verb, collection, id), nil
}

func createRecord(ctx context.Context, coord *mutation.Coordinator, collection models.Collection, raw string) (string, bool, error) {
	switch collection {
	case models.CollectionProducts:
		return applyRecord(ctx, raw, coord.CreateProduct)
	case models.CollectionCategories:
		return applyRecord(ctx, raw, coord.CreateCategory)
	case models.CollectionOrders:
		return applyRecord(ctx, raw, coord.CreateOrder)
	case models.CollectionCustomers:
		return applyRecord(ctx, raw, coord.CreateCustomer)
	default:
		return "", false, fmt.Errorf("collection %q cannot be mutated", collection)
	}
}

func updateRecord(ctx context.Context, coord *mutation.Coordinator, collection models.Collection, raw string) (string, bool, error) {
	switch collection {
	case models.CollectionProducts:
		return applyRecord(ctx, raw, coord.UpdateProduct)
	case models.CollectionCategories:
		return applyRecord(ctx, raw, coord.UpdateCategory)
	case models.CollectionOrders:
		return applyRecord(ctx, raw, coord.UpdateOrder)
	case models.CollectionCustomers:
		return applyRecord(ctx, raw, coord.UpdateCustomer)
	default:
		return "", false, fmt.Errorf("collection %q cannot be mutated", collection)
	}
}

func deleteRecord(ctx context.Context, coord *mutation.Coordinator, collection models.Collection, id string) (bool, error) {
	switch collection {
	case models.CollectionProducts:
		return coord.DeleteProduct(ctx, id)
	case models.CollectionCategories:
		return coord.DeleteCategory(ctx, id)
	case models.CollectionOrders:
		return coord.DeleteOrder(ctx, id)
	case models.CollectionCustomers:
		return coord.DeleteCustomer(ctx, id)
	default:
		return false, fmt.Errorf("collection %q cannot be mutated", collection)
	}
}

// applyRecord decodes the record argument and runs one coordinator method
func applyRecord[T models.Entity](ctx context.Context, raw string, apply func(context.Context, T) (T, bool, error)) (string, bool, error) {
	var entity T
	if err := json.Unmarshal([]byte(raw), &entity); err != nil {
		return "", false, fmt.Errorf("failed to decode record: %w", err)
	}

	committed, queued, err := apply(ctx, entity)
	if err != nil {
		return "", false, err
	}
	return committed.EntityID(), queued, nil
}

func runStatus(ctx context.Context, client *api.Client, st *store.Store, syncQueue *queue.Service) error {
	if err := client.Health(ctx); err != nil {
		fmt.Println("Server:     unreachable")
	} else {
		fmt.Println("Server:     ok")
	}

	pending, err := syncQueue.Pending(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Pending:    %d operations\n", len(pending))
	for _, op := range pending {
		fmt.Printf("  %-8s %-12s %s (attempt %d)\n", op.Type, op.Collection, op.EntityID, op.RetryCount)
	}

	at, err := syncQueue.LastDrainAt(ctx)
	switch {
	case errors.Is(err, storage.ErrMetadataNotFound):
		fmt.Println("Last drain: never")
	case err != nil:
		return err
	default:
		fmt.Printf("Last drain: %s\n", at.Format(time.RFC3339))
	}
	return nil
}

func runDrain(ctx context.Context, client *api.Client, monitor *connectivity.Monitor, syncQueue *queue.Service) error {
	if err := client.Health(ctx); err != nil {
		monitor.SetOnline(false)
		return fmt.Errorf("server unreachable, not draining: %w", err)
	}
	monitor.SetOnline(true)

	if err := syncQueue.Drain(ctx); err != nil {
		return err
	}

	pending, err := syncQueue.Pending(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Drained, %d operations still pending\n", len(pending))
	return nil
}

func runWatch(
	ctx context.Context,
	client *api.Client,
	st *store.Store,
	monitor *connectivity.Monitor,
	tiered *cache.Tiered,
	serverURL, token string,
	logger *slog.Logger,
) error {
	probe(ctx, client, monitor)
	if err := st.FetchAll(ctx, true); err != nil {
		logger.Warn("initial fetch incomplete", "error", err)
	}
	printCounts(st, collections...)

	go monitor.Run(ctx)

	sub := realtime.NewSubscriber(realtime.Config{URL: serverURL, Token: token}, logger)
	rec := realtime.NewReconciler(st, tiered, logger)

	for _, collection := range collections {
		deltas, err := sub.Subscribe(ctx, collection)
		if err != nil {
			// One collection failing must not block the others
			logger.Warn("subscription failed", "collection", collection, "error", err)
			continue
		}
		go rec.Run(ctx, deltas)
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	fmt.Println("Watching for changes, Ctrl-C to stop")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			printCounts(st, collections...)
		}
	}
}

func probe(ctx context.Context, client *api.Client, monitor *connectivity.Monitor) {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	monitor.SetOnline(client.Health(probeCtx) == nil)
}

func printUsage() {
	fmt.Println("Usage: storesync [flags] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  fetch [collection]         Fetch collections into the local cache")
	fmt.Println("  create <collection> <json> Create a record optimistically")
	fmt.Println("  update <collection> <json> Update a record optimistically")
	fmt.Println("  delete <collection> <id>   Delete a record optimistically")
	fmt.Println("  status                     Show connectivity, pending queue and last drain")
	fmt.Println("  drain                      Replay the offline queue now")
	fmt.Println("  watch                      Follow the change stream and keep slices fresh")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Printf("storesync\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
