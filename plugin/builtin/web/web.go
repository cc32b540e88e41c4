// Package web provides the builtin "web" plugin package: host functions that
// let workflow scripts issue HTTP requests through a shared, configured
// client.
package web

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Walkmana-25/Saphillon-Core/config"
	"github.com/Walkmana-25/Saphillon-Core/plugin"
	"github.com/Walkmana-25/Saphillon-Core/runtime"
)

// Config holds the HTTP client settings with declarative tags.
type Config struct {
	Timeout     time.Duration `json:"timeout" default:"30s" validate:"gte=1s"`
	MaxRetries  int           `json:"max_retries" default:"3" validate:"gte=0,lte=10"`
	RetryWaitMS int           `json:"retry_wait_ms" default:"100" validate:"gte=0,lte=10000"`
	Debug       bool          `json:"debug"`
}

// New builds the web plugin package. Raw values (from the process config
// file) are merged over the defaults before the client is created.
func New(raw map[string]any) (*plugin.Package, error) {
	var cfg Config
	if err := config.Apply(&cfg, raw); err != nil {
		return nil, fmt.Errorf("web plugin config: %w", err)
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(time.Duration(cfg.RetryWaitMS) * time.Millisecond).
		SetDebug(cfg.Debug)

	return plugin.NewPackage("sapphillon.web", "web", []*plugin.Function{
		plugin.NewFunction(
			"sapphillon.web.http_get", "http_get",
			"Perform an HTTP GET request and return status and body.",
			getFunc(client)),
		plugin.NewFunction(
			"sapphillon.web.http_post", "http_post",
			"Perform an HTTP POST request with a JSON body.",
			postFunc(client)),
	}), nil
}

func getFunc(client *resty.Client) runtime.HostFunc {
	return func(ctx context.Context, _ *runtime.State, args ...any) (any, error) {
		url, err := stringArg(args, 0, "url")
		if err != nil {
			return nil, err
		}
		resp, err := client.R().SetContext(ctx).Get(url)
		if err != nil {
			return nil, fmt.Errorf("http_get %s: %w", url, err)
		}
		return responseMap(resp), nil
	}
}

func postFunc(client *resty.Client) runtime.HostFunc {
	return func(ctx context.Context, _ *runtime.State, args ...any) (any, error) {
		url, err := stringArg(args, 0, "url")
		if err != nil {
			return nil, err
		}
		var body any
		if len(args) > 1 {
			body = args[1]
		}
		resp, err := client.R().SetContext(ctx).SetBody(body).Post(url)
		if err != nil {
			return nil, fmt.Errorf("http_post %s: %w", url, err)
		}
		return responseMap(resp), nil
	}
}

// responseMap projects a response into plain values the sandbox can convert.
func responseMap(resp *resty.Response) map[string]any {
	return map[string]any{
		"status":      resp.Status(),
		"status_code": int64(resp.StatusCode()),
		"is_error":    resp.IsError(),
		"body":        string(resp.Body()),
	}
}

func stringArg(args []any, i int, name string) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("missing %s argument", name)
	}
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", name, args[i])
	}
	return s, nil
}
