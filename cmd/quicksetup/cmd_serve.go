package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-quicksetup/pkg/quicksetup"
	"github.com/goliatone/go-quicksetup/pkg/renderers/html"
	"github.com/goliatone/go-quicksetup/pkg/stage"
	"github.com/goliatone/go-quicksetup/pkg/widget"
)

var serveFlags struct {
	addr         string
	grace        time.Duration
	templatesDir string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a document as a browser wizard",
	Long: `Serve a single wizard session over HTTP. Each POST applies the submitted
fields to the active stage and then presses the submitted button.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.addr, "addr", ":8383", "Listen address")
	f.DurationVar(&serveFlags.grace, "grace", 5*time.Second, "Shutdown grace period")
	f.StringVar(&serveFlags.templatesDir, "templates", "", "Directory holding a templates/ tree that replaces the embedded one")
	rootCmd.AddCommand(serveCmd)
}

type wizardServer struct {
	mu       sync.Mutex
	wizard   *quicksetup.Wizard
	renderer *html.Renderer
	logger   *zap.Logger
}

func runServe(cmd *cobra.Command, _ []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	logger := newLogger(cmd)
	defer func() { _ = logger.Sync() }()

	wizard, err := quicksetup.NewWizard(doc,
		quicksetup.WithValidator(quicksetup.SchemaValidator(doc)),
		quicksetup.WithSaveFunc(func(_ context.Context, data []widget.StageData) error {
			logger.Info("wizard saved", zap.String("document", doc.ID), zap.Int("stages", len(data)))
			return nil
		}),
	)
	if err != nil {
		return err
	}
	renderer, err := html.New(html.WithTemplatesDir(serveFlags.templatesDir))
	if err != nil {
		return err
	}
	server := &wizardServer{wizard: wizard, renderer: renderer, logger: logger}

	mux := http.NewServeMux()
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServerFS(html.AssetsFS())))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/data", server.dataHandler())
	mux.Handle("/", server.stageHandler())

	httpServer := &http.Server{Addr: serveFlags.addr, Handler: mux}
	logger.Info("listening", zap.String("addr", serveFlags.addr), zap.String("file", rootFlags.file))

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("listen: %w", err)
	case <-cmd.Context().Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serveFlags.grace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	return nil
}

func (s *wizardServer) stageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			page, err := s.page(r.Context())
			if err != nil {
				http.Error(w, fmt.Sprintf("render: %v", err), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", s.renderer.ContentType())
			if _, err := w.Write(page); err != nil {
				s.logger.Warn("write response", zap.Error(err))
			}
		case http.MethodPost:
			if err := r.ParseForm(); err != nil {
				http.Error(w, "invalid form payload", http.StatusBadRequest)
				return
			}
			if !s.wizard.Saved() {
				if content, ok := s.wizard.Content().(*stage.Content); ok {
					if err := html.ApplyForm(content, r.PostForm); err != nil {
						http.Error(w, fmt.Sprintf("apply form: %v", err), http.StatusBadRequest)
						return
					}
				}
				if button, ok := html.Pressed(r.PostForm, s.wizard.Buttons(r.Context())...); ok {
					button.Press()
					if err := s.wizard.Err(); err != nil {
						s.logger.Info("button rejected",
							zap.String("variant", string(button.Variant)),
							zap.Int("stage", s.wizard.Current()),
							zap.Error(err),
						)
					}
				}
			}
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			w.Header().Set("Allow", "GET, POST")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func (s *wizardServer) dataHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		data := s.wizard.Data()
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.Warn("write json response", zap.Error(err))
		}
	})
}

// page renders the recaps of completed stages followed by the active stage.
func (s *wizardServer) page(ctx context.Context) ([]byte, error) {
	doc := s.wizard.Document()
	page := html.Page{Title: doc.Title, Saved: s.wizard.Saved()}
	for idx, spec := range doc.Stages {
		recap, err := s.wizard.Recap(idx)
		if err != nil {
			return nil, err
		}
		page.Done = append(page.Done, html.PageSection{Title: spec.Title, Recap: recap})
	}
	if !page.Saved {
		current := s.wizard.Stage()
		page.Active = &html.ActiveStage{
			Position: s.wizard.Current() + 1,
			Total:    len(doc.Stages),
			Title:    current.Title,
			SubTitle: current.SubTitle,
			Content:  s.wizard.Content(),
			Buttons:  s.wizard.Buttons(ctx),
		}
	}
	return s.renderer.RenderPage(ctx, page)
}

// newLogger writes console-encoded entries to the command's stderr.
func newLogger(cmd *cobra.Command) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(cmd.ErrOrStderr()), zapcore.InfoLevel)
	return zap.New(core).Named("quicksetup")
}
