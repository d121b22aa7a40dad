package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/nutrigest/internal/config"
	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
	"github.com/dropDatabas3/nutrigest/internal/store/pg"
	migrations "github.com/dropDatabas3/nutrigest/migrations/postgres"
)

type client struct {
	BaseURL   string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(strings.TrimSpace(string(body)))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

// call ejecuta el request e imprime la respuesta; un status no-2xx es error.
func (c *client) call(cmd *cobra.Command, method, path string, body []byte) error {
	status, resp, err := c.do(cmd.Context(), method, path, body)
	if err != nil {
		return err
	}
	if status/100 != 2 {
		return fmt.Errorf("%s %s: status=%d body=%s", method, path, status, strings.TrimSpace(string(resp)))
	}
	c.print(status, resp)
	return nil
}

func main() {
	var (
		baseURL    = envOr("NUTRIGEST_URL", "http://localhost:8080")
		out        = envOr("NUTRIGEST_OUT", "text")
		configPath = envOr("CONFIG_PATH", "configs/config.yaml")
	)

	cl := &client{HTTP: &http.Client{Timeout: 30 * time.Second}}

	root := &cobra.Command{
		Use:           "nutrictl",
		Short:         "CLI de operación de nutrigest (cache y migraciones)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cl.BaseURL = baseURL
			cl.OutFormat = out
		},
	}
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del servicio (env NUTRIGEST_URL)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	// ─── health ───
	root.AddCommand(&cobra.Command{
		Use:   "health",
		Short: "GET /readyz",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.call(cmd, http.MethodGet, "/readyz", nil)
		},
	})

	// ─── cache ───
	cacheCmd := &cobra.Command{Use: "cache", Short: "Administración del cache (vía /api/admin/cache)"}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Estadísticas del cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.call(cmd, http.MethodGet, "/api/admin/cache/stats", nil)
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Vacía el cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.call(cmd, http.MethodPost, "/api/admin/cache/clear", nil); err != nil {
				return err
			}
			if cl.OutFormat == "text" {
				fmt.Println("ok")
			}
			return nil
		},
	})

	var prefix string
	invalidateCmd := &cobra.Command{
		Use:   "invalidate",
		Short: "Elimina las keys que empiezan con --prefix (ej: pacientes_42_)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(prefix) == "" {
				return fmt.Errorf("--prefix es requerido (para vaciar todo usar 'cache clear')")
			}
			b, _ := json.Marshal(map[string]string{"prefix": prefix})
			return cl.call(cmd, http.MethodPost, "/api/admin/cache/invalidate", b)
		},
	}
	invalidateCmd.Flags().StringVar(&prefix, "prefix", "", "Prefijo de keys a invalidar")
	cacheCmd.AddCommand(invalidateCmd)
	root.AddCommand(cacheCmd)

	// ─── migrate ───
	migrateCmd := &cobra.Command{
		Use:       "migrate [up|down] [steps]",
		Short:     "Aplica las migraciones embebidas contra storage.dsn",
		Args:      cobra.RangeArgs(0, 2),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action, steps := "up", 0
			if len(args) >= 1 {
				action = strings.ToLower(args[0])
			}
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil || n < 0 {
					return fmt.Errorf("steps debe ser un entero >= 0")
				}
				steps = n
			}
			return runMigrate(cmd.Context(), configPath, action, steps)
		},
	}
	migrateCmd.Flags().StringVar(&configPath, "config", configPath, "Path al YAML de configuración")
	root.AddCommand(migrateCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runMigrate(ctx context.Context, configPath, action string, steps int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	defer func() { _ = logger.Sync() }()

	st, err := pg.New(ctx, cfg.Storage.DSN, pg.PoolConfig{})
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer st.Close()

	applied, err := pg.Migrate(ctx, st.Pool(), migrations.FS, action, steps)
	for _, f := range applied {
		fmt.Println("applied", f)
	}
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Println("nothing to do")
	}
	return nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
