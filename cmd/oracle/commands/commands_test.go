package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/oracle/cmd/oracle/commands"
	"go.trai.ch/oracle/internal/app"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/engine/modelcache"
)

type mockApp struct {
	modelFunc func(ctx context.Context, path string) (*domain.DerivedModel, error)
	watchFunc func(ctx context.Context, root string, opts app.WatchOptions) error
}

func (m *mockApp) Model(ctx context.Context, path string) (*domain.DerivedModel, error) {
	return m.modelFunc(ctx, path)
}

func (m *mockApp) Watch(ctx context.Context, root string, opts app.WatchOptions) error {
	return m.watchFunc(ctx, root, opts)
}

func (m *mockApp) Stats() modelcache.Stats {
	return modelcache.Stats{Hits: 2, Misses: 1, Builds: 1}
}

func (m *mockApp) Telemetry() domain.TelemetrySummary {
	return domain.TelemetrySummary{Started: 3, Cached: 2, Failed: 0, Completed: 3}
}

type mockLogs struct {
	json  bool
	level domain.LogLevel
	set   bool
}

func (m *mockLogs) SetJSON(enabled bool) { m.json = enabled }

func (m *mockLogs) SetLevel(level domain.LogLevel) {
	m.level = level
	m.set = true
}

func shopModel() *domain.DerivedModel {
	return domain.NewModelBuilder(domain.NewProjectIdentity("/work/shop", "example.com/shop")).
		WithFingerprint("00000000deadbeef").
		AddPackages("example.com/shop/orders").
		AddType(domain.TypeEntry{Name: "example.com/shop/orders.Order", Kind: "struct", Origin: domain.OriginProject}).
		AddType(domain.TypeEntry{Name: "example.com/shop/orders.Placed", Kind: "struct", Event: true, Origin: domain.OriginProject}).
		AddType(domain.TypeEntry{Name: "math/big.Int", Origin: domain.OriginDependency}).
		Build()
}

func modelApp(gotPath *string) *mockApp {
	return &mockApp{
		modelFunc: func(_ context.Context, path string) (*domain.DerivedModel, error) {
			*gotPath = path
			return shopModel(), nil
		},
	}
}

func TestCommands_Model(t *testing.T) {
	t.Run("prints a table", func(t *testing.T) {
		var path string
		cli := commands.New(modelApp(&path), nil)
		out := new(bytes.Buffer)
		cli.SetOutput(out, new(bytes.Buffer))
		cli.SetArgs([]string{"model"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, ".", path)
		assert.Contains(t, out.String(), "example.com/shop")
		assert.Contains(t, out.String(), "example.com/shop/orders.Placed")
		assert.Contains(t, out.String(), "math/big.Int")
		assert.NotContains(t, out.String(), "cache:")
	})

	t.Run("prints JSON with filters", func(t *testing.T) {
		var path string
		cli := commands.New(modelApp(&path), nil)
		out := new(bytes.Buffer)
		cli.SetOutput(out, new(bytes.Buffer))
		cli.SetArgs([]string{"model", "--json", "--events", "--stats", "/work/shop/orders"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "/work/shop/orders", path)

		var report struct {
			Project     string                  `json:"project"`
			Fingerprint string                  `json:"fingerprint"`
			Types       []domain.TypeEntry      `json:"types"`
			Stats       modelcache.Stats        `json:"stats"`
			Telemetry   domain.TelemetrySummary `json:"telemetry"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		assert.Equal(t, "example.com/shop", report.Project)
		assert.Equal(t, "00000000deadbeef", report.Fingerprint)
		require.Len(t, report.Types, 1)
		assert.Equal(t, "example.com/shop/orders.Placed", report.Types[0].Name)
		assert.Equal(t, uint64(2), report.Stats.Hits)
		assert.Equal(t, domain.TelemetrySummary{Started: 3, Cached: 2, Completed: 3}, report.Telemetry)
	})

	t.Run("prints counters as text", func(t *testing.T) {
		var path string
		cli := commands.New(modelApp(&path), nil)
		out := new(bytes.Buffer)
		cli.SetOutput(out, new(bytes.Buffer))
		cli.SetArgs([]string{"model", "--stats"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, out.String(), "cache: 2 hits, 1 misses, 1 builds, 0 evictions, 0 invalidations")
		assert.Contains(t, out.String(), "lookups: 3 started, 2 cached, 0 failed, 3 completed")
	})

	t.Run("lists dependency types", func(t *testing.T) {
		var path string
		cli := commands.New(modelApp(&path), nil)
		out := new(bytes.Buffer)
		cli.SetOutput(out, new(bytes.Buffer))
		cli.SetArgs([]string{"model", "--dependencies"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, out.String(), "math/big.Int")
		assert.NotContains(t, out.String(), "orders.Order")
	})

	t.Run("returns error on failure", func(t *testing.T) {
		cli := commands.New(&mockApp{
			modelFunc: func(context.Context, string) (*domain.DerivedModel, error) {
				return nil, errors.New("simulated error")
			},
		}, nil)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"model"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Watch(t *testing.T) {
	var gotRoot string
	var gotOpts app.WatchOptions
	cli := commands.New(&mockApp{
		watchFunc: func(_ context.Context, root string, opts app.WatchOptions) error {
			gotRoot, gotOpts = root, opts
			return nil
		},
	}, nil)
	out := new(bytes.Buffer)
	cli.SetOutput(out, new(bytes.Buffer))
	cli.SetArgs([]string{"watch", "--warm", "/work"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "/work", gotRoot)
	assert.True(t, gotOpts.Warm)
	assert.Equal(t, "lookups: 3 started, 2 cached, 0 failed, 3 completed\n", out.String())
}

func TestCommands_LogFlags(t *testing.T) {
	logs := &mockLogs{}
	cli := commands.New(&mockApp{}, logs)
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"version", "--verbose", "--log-json"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, logs.json)
	assert.True(t, logs.set)
	assert.Equal(t, domain.LogLevelDebug, logs.level)
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{}, nil)
	out := new(bytes.Buffer)
	cli.SetOutput(out, out)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "oracle version dev")
}
