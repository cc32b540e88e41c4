// Package jsonutil provides the builtin "jsonutil" plugin package: host
// functions for parsing JSON text and reading values out of it by dot path.
package jsonutil

import (
	"context"
	"fmt"

	"github.com/Jeffail/gabs/v2"

	"github.com/Walkmana-25/Saphillon-Core/plugin"
	"github.com/Walkmana-25/Saphillon-Core/runtime"
)

// New builds the jsonutil plugin package.
func New() *plugin.Package {
	return plugin.NewPackage("sapphillon.jsonutil", "jsonutil", []*plugin.Function{
		plugin.NewFunction(
			"sapphillon.jsonutil.json_parse", "json_parse",
			"Parse JSON text into a value.",
			parseFunc),
		plugin.NewFunction(
			"sapphillon.jsonutil.json_get", "json_get",
			"Read the value at a dot-separated path inside JSON text.",
			getFunc),
	})
}

func parseFunc(_ context.Context, _ *runtime.State, args ...any) (any, error) {
	text, err := stringArg(args, 0, "text")
	if err != nil {
		return nil, err
	}
	c, err := gabs.ParseJSON([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("json_parse: %w", err)
	}
	return c.Data(), nil
}

func getFunc(_ context.Context, _ *runtime.State, args ...any) (any, error) {
	text, err := stringArg(args, 0, "text")
	if err != nil {
		return nil, err
	}
	path, err := stringArg(args, 1, "path")
	if err != nil {
		return nil, err
	}
	c, err := gabs.ParseJSON([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("json_get: %w", err)
	}
	v := c.Path(path)
	if v == nil {
		return nil, fmt.Errorf("json_get: no value at path %q", path)
	}
	return v.Data(), nil
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
