package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"
	"github.com/umputun/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/taskcache/app/coordinator"
	"github.com/umputun/taskcache/app/evictor"
	"github.com/umputun/taskcache/app/store"
	"github.com/umputun/taskcache/app/web"
)

var opts struct {
	Store struct {
		Location string `short:"l" long:"location" env:"LOCATION" default:"var/tasks" description:"task store directory"`
		Engine   string `long:"engine" env:"ENGINE" choice:"badger" choice:"sqlite" default:"badger" description:"storage engine"`
		Compact  string `long:"compact" env:"COMPACT" default:"@every 10m" description:"compaction schedule, empty to disable"`
	} `group:"store" namespace:"store" env-namespace:"STORE"`

	Web struct {
		Address      string  `long:"address" env:"ADDRESS" default:":8080" description:"web server listen address"`
		User         string  `long:"user" env:"USER" default:"taskcache" description:"basic auth user"`
		PasswordHash string  `long:"password-hash" env:"PASSWORD_HASH" description:"bcrypt hash of basic auth password"`
		WebhookLimit float64 `long:"webhook-limit" env:"WEBHOOK_LIMIT" default:"100" description:"max webhook requests per second"`
	} `group:"web" namespace:"web" env-namespace:"WEB"`

	ListenersConcurrency int `long:"listeners" env:"LISTENERS" default:"4" description:"max concurrent coordinator listeners"`

	Log struct {
		Enabled         bool   `long:"enabled" env:"ENABLED" description:"enable logging to file"`
		Filename        string `long:"filename" env:"FILENAME" default:"taskcache.log" description:"log file name"`
		MaxSize         int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"max log file size in megabytes"`
		MaxBackups      int    `long:"max-backups" env:"MAX_BACKUPS" default:"7" description:"max number of rotated files"`
		MaxAge          int    `long:"max-age" env:"MAX_AGE" default:"0" description:"max days to keep rotated files, 0 to keep all"`
		EnabledCompress bool   `long:"compress" env:"COMPRESS" description:"compress rotated files"`
	} `group:"log" namespace:"log" env-namespace:"LOG"`

	Dbg bool `long:"dbg" env:"DEBUG" description:"debug mode"`
}

var revision = "unknown"

func main() {
	fmt.Printf("taskcache %s\n", revision)

	p := flags.NewParser(&opts, flags.Default)
	p.NamespaceDelimiter = "."
	p.EnvNamespaceDelimiter = "_"
	p.EnvNamespace = "TASKCACHE"
	if _, err := p.Parse(); err != nil {
		os.Exit(2)
	}
	setupLogs()

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	signals(cancel) // handle SIGQUIT and SIGTERM

	if err := run(ctx); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

// run opens the task store, wires evictor to coordinator notifications and serves api until ctx canceled.
// Failure to open the store is returned as is, the process can't work without its task history.
func run(ctx context.Context) error {
	st, err := store.Open(opts.Store.Location, store.EngineKind(opts.Store.Engine))
	if err != nil {
		return fmt.Errorf("can't open task store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("[WARN] failed to close task store, %v", err)
		}
	}()
	log.Printf("[INFO] task store %s, engine %s", st, opts.Store.Engine)

	logResumePoint(st)

	dispatcher := &coordinator.Dispatcher{Concurrency: opts.ListenersConcurrency}
	dispatcher.Register(evictor.New(st, log.Default()))

	compactor, err := makeCompactor(st, opts.Store.Compact)
	if err != nil {
		return err
	}
	if compactor != nil {
		compactor.Start()
		defer func() { <-compactor.Stop().Done() }()
	}

	srv, err := web.New(web.Config{
		Store:        st,
		Listener:     dispatcher,
		Version:      revision,
		AuthUser:     opts.Web.User,
		PasswordHash: opts.Web.PasswordHash,
		WebhookLimit: opts.Web.WebhookLimit,
	})
	if err != nil {
		return fmt.Errorf("can't make web server: %w", err)
	}
	return srv.Run(ctx, opts.Web.Address)
}

// logResumePoint reports the most recent cached task, prover picks its work from there
func logResumePoint(st *store.TaskStore) {
	n, err := st.Len()
	if err != nil {
		log.Printf("[WARN] can't count cached tasks, %v", err)
		return
	}
	if n == 0 {
		log.Printf("[INFO] task cache is empty, nothing to resume")
		return
	}
	last, err := st.GetLast()
	if err != nil {
		log.Printf("[WARN] can't get last cached task, %v", err)
		return
	}
	if last != nil {
		log.Printf("[INFO] %d cached task(s), resume from %s (uuid:%s, type:%d)", n, last.Task.ID, last.Task.UUID, last.Task.TaskType)
	}
}

// makeCompactor returns cron running store compaction by spec, nil for empty spec
func makeCompactor(st *store.TaskStore, spec string) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := st.Compact(); err != nil {
			log.Printf("[WARN] task store compaction failed, %v", err)
			return
		}
		log.Printf("[DEBUG] task store compacted")
	})
	if err != nil {
		return nil, fmt.Errorf("can't parse compaction schedule %q: %w", spec, err)
	}
	return c, nil
}

func setupLogs() io.Writer {
	out := io.Writer(os.Stdout)
	if opts.Log.Enabled {
		out = &lumberjack.Logger{
			Filename:   opts.Log.Filename,
			MaxSize:    opts.Log.MaxSize,
			MaxBackups: opts.Log.MaxBackups,
			MaxAge:     opts.Log.MaxAge,
			Compress:   opts.Log.EnabledCompress,
		}
	}

	if opts.Dbg {
		log.Setup(log.Out(out), log.Debug, log.Msec, log.CallerFunc, log.CallerPkg, log.CallerFile)
		return out
	}
	log.Setup(log.Out(out), log.Msec)
	return out
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			if sig == syscall.SIGQUIT { // catch SIGQUIT and print stack traces
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
				continue
			}
			cancel() // terminate on SIGTERM
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
}
