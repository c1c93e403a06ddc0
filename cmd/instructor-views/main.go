package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	instructorviews "github.com/starcellbio/instructor-views"
	"github.com/starcellbio/instructor-views/internal/prompt"
	"github.com/starcellbio/instructor-views/pkg/handler"
	"github.com/starcellbio/instructor-views/pkg/model"
	"github.com/starcellbio/instructor-views/pkg/pages/chrome"
	"github.com/starcellbio/instructor-views/pkg/pages/microscopy"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, prompt.NewSurveyDriver()); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, driver prompt.Driver) error {
	flags := flag.NewFlagSet("instructor-views", flag.ContinueOnError)
	dataPath := flags.String("data", "", "assignment catalog (YAML or JSON)")
	assignmentID := flags.String("assignment", "", "assignment ID to render (defaults to the catalog selection)")
	pageName := flags.String("page", microscopy.Page1Name, "page to render")
	output := flags.String("output", "", "output file (stdout if empty)")
	interactive := flags.Bool("interactive", false, "prompt for missing inputs")
	serve := flags.String("serve", "", "serve pages over HTTP on this address instead of rendering once")
	basePath := flags.String("base-path", "/instructor", "mount path used when serving")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *dataPath == "" && *interactive {
		path, err := driver.Input(ctx, prompt.InputConfig{
			Message: "Catalog file",
			Validator: func(value string) error {
				if strings.TrimSpace(value) == "" {
					return errors.New("a catalog path is required")
				}
				return nil
			},
		})
		if err != nil {
			return fmt.Errorf("read catalog path: %w", err)
		}
		*dataPath = path
	}

	catalog, err := model.LoadCatalog(*dataPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	if *serve != "" {
		if err := serveHTTP(*serve, *basePath, catalog); err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	}

	id := strings.TrimSpace(*assignmentID)
	if id == "" && *interactive {
		assignment, err := prompt.SelectAssignment(ctx, driver, catalog.Assignments)
		if err != nil {
			return fmt.Errorf("select assignment: %w", err)
		}
		id = assignment.ID
	}
	if id == "" {
		id = catalog.Assignments.Selected
	}
	if id == "" {
		id = catalog.Assignments.List[0].ID
	}

	registry, err := instructorviews.NewRegistry()
	if err != nil {
		return fmt.Errorf("configure pages: %w", err)
	}
	page, err := registry.Get(*pageName)
	if err != nil {
		return fmt.Errorf("unknown page %q (available: %s)", *pageName, strings.Join(registry.List(), ", "))
	}

	data, err := catalog.PageData(id)
	if err != nil {
		return fmt.Errorf("resolve assignment: %w", err)
	}

	outputHTML, err := page.Render(ctx, data)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(outputHTML), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(stdout, "Page written to %s\n", *output)
		return nil
	}
	fmt.Fprintln(stdout, outputHTML)
	return nil
}

func serveHTTP(addr, basePath string, catalog model.Catalog) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	registry, err := instructorviews.NewRegistry(microscopy.WithChromeOptions(
		chrome.WithAssignmentLink(handler.AssignmentLink(basePath, microscopy.Page1Name)),
	))
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	handler.Routes(mux, basePath, handler.New(registry, catalog, handler.WithLogger(logger)))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("serving instructor pages",
		zap.String("addr", addr),
		zap.String("route", handler.MountPath(basePath)),
		zap.Strings("pages", registry.List()),
	)
	return server.ListenAndServe()
}
