// Command dashboard renders the fleet dashboard in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-dashboard/internal/assistant"
	"github.com/ukydev/fleet-dashboard/internal/config"
	"github.com/ukydev/fleet-dashboard/internal/dashboard"
	"github.com/ukydev/fleet-dashboard/internal/fleetapi"
	"github.com/ukydev/fleet-dashboard/internal/triage"
)

// chatFlags collects repeated -chat values.
type chatFlags []string

func (c *chatFlags) String() string { return strings.Join(*c, "; ") }

func (c *chatFlags) Set(v string) error {
	*c = append(*c, v)
	return nil
}

type options struct {
	apiURL    string
	timeout   time.Duration
	tab       dashboard.Tab
	filter    triage.Filter
	chat      []string
	predict   []string
	clearChat bool
}

func parseFlags(args []string, cfg *config.Config) (*options, error) {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	var (
		opts    options
		tab     string
		filter  string
		predict string
		chat    chatFlags
	)
	fs.StringVar(&opts.apiURL, "api", cfg.APIBaseURL, "fleet API base URL")
	fs.DurationVar(&opts.timeout, "timeout", cfg.APITimeout, "per-request timeout")
	fs.StringVar(&tab, "tab", string(dashboard.TabDashboard), "page to render: dashboard, maintenance or chat")
	fs.StringVar(&filter, "filter", string(triage.FilterAll), "maintenance filter: all, urgent, overdue or scheduled")
	fs.Var(&chat, "chat", "message to send to the assistant, or a quick action id (repeatable)")
	fs.StringVar(&predict, "predict", "", "comma separated vehicle ids to request predictions for")
	fs.BoolVar(&opts.clearChat, "clear", false, "clear the conversation after sending messages")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.tab = dashboard.Tab(strings.ToLower(tab))
	if !dashboard.IsValidTab(opts.tab) {
		return nil, fmt.Errorf("unknown tab %q", tab)
	}
	f, err := triage.ParseFilter(filter)
	if err != nil {
		return nil, err
	}
	opts.filter = f

	for _, id := range strings.Split(predict, ",") {
		if id = strings.TrimSpace(id); id != "" {
			opts.predict = append(opts.predict, id)
		}
	}
	for _, msg := range chat {
		if action, ok := assistant.QuickActionByID(msg); ok {
			msg = action.Query
		}
		opts.chat = append(opts.chat, msg)
	}
	return &opts, nil
}

func run(ctx context.Context, args []string, out io.Writer, cfg *config.Config) error {
	opts, err := parseFlags(args, cfg)
	if err != nil {
		return err
	}

	client := fleetapi.NewClient(opts.apiURL, fleetapi.WithTimeout(opts.timeout))
	ctrl := dashboard.NewController(client)

	s := ctrl.Load(ctx, ctrl.Init())
	if opts.tab == dashboard.TabDashboard {
		s = ctrl.LoadPerformance(ctx, s)
	}
	for _, id := range opts.predict {
		s = ctrl.Predict(ctx, s, id)
	}
	for _, msg := range opts.chat {
		s = ctrl.SendMessage(ctx, s, msg)
	}
	if opts.clearChat {
		s = ctrl.ClearChat(s)
	}
	s = dashboard.Reduce(s, dashboard.FilterSelected{Filter: opts.filter})
	s = dashboard.Reduce(s, dashboard.TabSelected{Tab: opts.tab})

	return dashboard.Render(out, s, time.Now())
}

func main() {
	cfg := config.Load()
	cfg.SetupLogging()

	if err := run(context.Background(), os.Args[1:], os.Stdout, cfg); err != nil {
		log.WithError(err).Fatal("Dashboard failed")
	}
}
