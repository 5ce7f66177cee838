package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"

	"github.com/samvad-hq/opendota-go/pkg/feeds"
	"github.com/samvad-hq/opendota-go/pkg/opendota"
)

var prettyJSON = jsoniter.Config{
	EscapeHTML:    false,
	SortMapKeys:   true,
	UseNumber:     true,
	IndentionStep: 2,
}.Froze()

// ParseQuery turns repeated key=value flags into call parameters. A key given more
// than once becomes a sequence in flag order.
func ParseQuery(pairs []string) (opendota.Params, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	grouped := make(map[string][]string, len(pairs))
	order := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid query %q (expected key=value)", pair)
		}
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], value)
	}

	params := make(opendota.Params, len(grouped))
	for _, key := range order {
		if values := grouped[key]; len(values) == 1 {
			params[key] = values[0]
		} else {
			params[key] = values
		}
	}
	return params, nil
}

// Query calls one endpoint and writes the decoded result to w as indented JSON.
func Query(ctx context.Context, caller feeds.Caller, endpoint string, args []string, params opendota.Params, w io.Writer) error {
	res, err := caller.Call(ctx, endpoint, args, params)
	if err != nil {
		return err
	}

	out, err := prettyJSON.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// ListEndpoints prints the endpoint catalog as an aligned table.
func ListEndpoints(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPATH\tSHAPE\tQUERY")
	for _, ep := range opendota.Endpoints() {
		query := strings.Join(ep.QueryParams, ",")
		if query == "" {
			query = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ep.Name, ep.Path, ep.Shape, query)
	}
	return tw.Flush()
}
