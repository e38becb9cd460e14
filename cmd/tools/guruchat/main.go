package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/game-guru/backend/internal/config"
	chatModel "github.com/zhouzirui/game-guru/backend/internal/model/chat"
	"github.com/zhouzirui/game-guru/backend/internal/model/game"
	"github.com/zhouzirui/game-guru/backend/internal/service/chat"
	"github.com/zhouzirui/game-guru/backend/internal/service/recommend"
	"github.com/zhouzirui/game-guru/backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "[WARN] no .env file, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	mode := flag.String("mode", cfg.Guru.MatchMode, "filter mode: unified or mood")
	catalogPath := flag.String("catalog", cfg.Guru.CatalogPath, "catalog JSON file, empty uses the built-in games")
	instant := flag.Bool("instant", false, "skip the thinking and reveal delays")
	logLevel := flag.String("log", "warn", "log level")
	flag.Parse()

	if err := logger.SetupWriter(os.Stderr, *logLevel, "console"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(1)
	}

	games := game.Seed()
	if *catalogPath != "" {
		games, err = game.LoadFile(*catalogPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *catalogPath).Msg("failed to load catalog")
		}
	}
	catalog := game.NewMemoryStore(games)

	matchMode, err := recommend.ParseMode(*mode)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid mode")
	}

	responder, err := recommend.NewResponder(context.Background(), catalog, recommend.Config{
		Mode:          matchMode,
		SynopsisLimit: cfg.Guru.SynopsisLimit,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build responder")
	}

	timing := chat.Timing{ReplyDelay: cfg.Guru.ReplyDelay, StaggerDelay: cfg.Guru.StaggerDelay}
	if *instant {
		timing = chat.Timing{}
	}

	svc := chat.NewService(catalog, responder, chat.Options{Timing: timing})
	defer svc.Shutdown()

	if err := run(svc, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("chat ended with error")
	}
}

// run drives one session from in until EOF or /quit.
func run(svc *chat.Service, in io.Reader, out io.Writer) error {
	ctx := context.Background()
	snapshot, err := svc.CreateSession(ctx)
	if err != nil {
		return err
	}
	session, err := svc.Session(snapshot.ID)
	if err != nil {
		return err
	}

	events, unsubscribe := session.Subscribe(64)
	defer unsubscribe()

	r := &repl{svc: svc, session: session, events: events, out: out}
	for _, msg := range snapshot.Messages {
		r.print(msg)
	}
	fmt.Fprintln(out, "Commands: /clear, /open <n>, /quit")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit":
			return nil
		case line == "/clear":
			if err := session.Clear(); err != nil {
				return err
			}
			r.drainUntil(func(evt chat.Event) bool { return evt.Type == chat.EventCleared })
		case strings.HasPrefix(line, "/open"):
			r.open(ctx, strings.TrimSpace(strings.TrimPrefix(line, "/open")))
		default:
			if err := session.Send(line); err != nil {
				fmt.Fprintf(out, "! %v\n", err)
				continue
			}
			r.drainUntil(func(evt chat.Event) bool {
				return evt.Type == chat.EventState && evt.State == chatModel.StateIdle
			})
		}
	}
}

type repl struct {
	svc     *chat.Service
	session *chat.Session
	events  <-chan chat.Event
	out     io.Writer
	// refs holds the game references shown in the latest reply, numbered from 1.
	refs []string
}

func (r *repl) drainUntil(done func(chat.Event) bool) {
	timeout := time.NewTimer(time.Minute)
	defer timeout.Stop()

	for {
		select {
		case evt, ok := <-r.events:
			if !ok {
				return
			}
			switch evt.Type {
			case chat.EventMessage:
				if evt.Message.IsUser {
					r.refs = nil
				} else {
					r.print(*evt.Message)
				}
			case chat.EventCleared:
				r.refs = nil
				for _, msg := range evt.Messages {
					r.print(msg)
				}
			case chat.EventState:
				if evt.State == chatModel.StateAwaitingResponse {
					fmt.Fprintln(r.out, "  ...")
				}
			}
			if done(evt) {
				return
			}
		case <-timeout.C:
			fmt.Fprintln(r.out, "! timed out waiting for a reply")
			return
		}
	}
}

func (r *repl) print(msg chatModel.Message) {
	if msg.GameRef != "" {
		r.refs = append(r.refs, msg.GameRef)
		fmt.Fprintf(r.out, "[%d] %s\n", len(r.refs), msg.Text)
		return
	}
	fmt.Fprintln(r.out, msg.Text)
}

func (r *repl) open(ctx context.Context, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(r.refs) {
		fmt.Fprintf(r.out, "! pick a game between 1 and %d\n", len(r.refs))
		return
	}
	g, err := r.svc.SelectGame(ctx, r.refs[n-1])
	if err != nil {
		fmt.Fprintf(r.out, "! %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "%s (%s)\n  %s\n  Players %d-%d, %d min, difficulty %d/5\n",
		g.Name, joinCategories(g.Categories), g.Description, g.MinPlayers, g.MaxPlayers, g.PlayTime, g.Difficulty)
}

func joinCategories(categories []game.Category) string {
	parts := make([]string, len(categories))
	for i, c := range categories {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
