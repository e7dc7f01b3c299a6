package modelcache_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/oracle/internal/core/domain"
	"go.trai.ch/oracle/internal/core/ports/mocks"
	"go.trai.ch/oracle/internal/engine/modelcache"
	"go.uber.org/mock/gomock"
)

func assemble(t *testing.T, w *world, log *mocks.MockLogger, filter domain.PackageFilter, imports []string) *domain.DerivedModel {
	t.Helper()
	module, err := w.GetOrBuild(context.Background(), project("acme"))
	require.NoError(t, err)

	a := modelcache.NewAssembler(w, w, w, log, modelcache.AssemblerConfig{Workers: 3})
	model, err := a.Assemble(context.Background(), module, filter, imports)
	require.NoError(t, err)
	return model
}

func TestAssembler_FilterSelectsPackages(t *testing.T) {
	w := newWorld().
		class("com.acme.x", "Foo", domain.TypeMeta{Kind: "struct"}).
		class("com.acme.x", "Bar", domain.TypeMeta{Kind: "interface"}).
		class("org.other.y", "Baz", domain.TypeMeta{Kind: "struct"})

	model := assemble(t, w, quietLogger(t), domain.NewPackageFilter("com.acme"), nil)

	assert.Equal(t, []string{"com.acme.x.Bar", "com.acme.x.Foo"}, names(model.Types()))
	assert.Equal(t, []string{"com.acme.x"}, model.Packages())

	foo, ok := model.Type("com.acme.x.Foo")
	require.True(t, ok)
	assert.Equal(t, domain.TypeEntry{
		Name:       "com.acme.x.Foo",
		Package:    "com.acme.x",
		SimpleName: "Foo",
		Kind:       "struct",
		Origin:     domain.OriginProject,
	}, foo)
}

func TestAssembler_EmptyFilterScansEverything(t *testing.T) {
	w := newWorld().
		class("com.acme.x", "Foo", domain.TypeMeta{}).
		class("org.other.y", "Baz", domain.TypeMeta{})

	model := assemble(t, w, quietLogger(t), domain.NewPackageFilter(), nil)

	assert.Equal(t, []string{"com.acme.x.Foo", "org.other.y.Baz"}, names(model.Types()))
	assert.Equal(t, []string{"com.acme.x", "org.other.y"}, model.Packages())
}

func TestAssembler_FailingClassesAreSkipped(t *testing.T) {
	w := newWorld().
		class("com.acme.x", "Foo", domain.TypeMeta{Kind: "struct"}).
		class("com.acme.x", "Broken", domain.TypeMeta{}).
		class("com.acme.x", "Bar", domain.TypeMeta{Kind: "struct"}).
		class("com.acme.y", "Qux", domain.TypeMeta{Kind: "struct"}).
		class("com.acme.y", "Exploding", domain.TypeMeta{})
	w.failing["com.acme.x.Broken"] = errors.New("missing dependency")
	w.panicking["com.acme.y.Exploding"] = true

	log := quietLogger(t)
	var (
		mu     sync.Mutex
		logged []error
	)
	log.EXPECT().Error(gomock.Any()).Do(func(err error) {
		mu.Lock()
		defer mu.Unlock()
		logged = append(logged, err)
	}).Times(2)

	model := assemble(t, w, log, domain.NewPackageFilter(), nil)

	assert.Equal(t, []string{"com.acme.x.Bar", "com.acme.x.Foo", "com.acme.y.Qux"}, names(model.Types()))
	for _, err := range logged {
		assert.ErrorContains(t, err, domain.ErrClassIntrospectionFailed.Error())
	}
}

func TestAssembler_FailingPackageIsSkipped(t *testing.T) {
	w := newWorld().
		class("com.acme.x", "Foo", domain.TypeMeta{}).
		class("com.acme.z", "Ok", domain.TypeMeta{})
	w.brokenPkgs["com.acme.z"] = true

	log := quietLogger(t)
	log.EXPECT().Error(gomock.Any()).Times(1)

	model := assemble(t, w, log, domain.NewPackageFilter(), nil)

	assert.Equal(t, []string{"com.acme.x.Foo"}, names(model.Types()))
	assert.Equal(t, []string{"com.acme.x", "com.acme.z"}, model.Packages(), "the package stays registered")
}

func TestAssembler_Imports(t *testing.T) {
	w := newWorld().class("com.acme.x", "Foo", domain.TypeMeta{Kind: "struct"})
	w.resolvable["java.lang.Number"] = domain.TypeRef{Package: "java.lang", Name: "Number"}

	log := quietLogger(t)
	log.EXPECT().Error(gomock.Any()).Times(1)

	model := assemble(t, w, log, domain.NewPackageFilter(), []string{"java.lang.Number", "java.lang.Missing"})

	number, ok := model.Type("java.lang.Number")
	require.True(t, ok)
	assert.Equal(t, domain.OriginDependency, number.Origin)
	assert.Equal(t, "Number", number.SimpleName)
	assert.False(t, number.Event)

	_, ok = model.Type("java.lang.Missing")
	assert.False(t, ok, "unresolvable imports are left out")
	assert.Equal(t, []string{"java.lang.Number"}, names(model.DependencyTypes()))
}

func TestAssembler_ImportReplacesProjectClass(t *testing.T) {
	w := newWorld().class("com.acme.x", "Foo", domain.TypeMeta{Kind: "struct", Event: true})
	w.resolvable["com.acme.x.Foo"] = domain.TypeRef{Package: "com.acme.x", Name: "Foo"}

	model := assemble(t, w, quietLogger(t), domain.NewPackageFilter(), []string{"com.acme.x.Foo"})

	foo, ok := model.Type("com.acme.x.Foo")
	require.True(t, ok)
	assert.Equal(t, domain.OriginDependency, foo.Origin)
	assert.False(t, foo.Event)
	assert.Equal(t, 1, model.Len())
}

func TestAssembler_Cancelled(t *testing.T) {
	w := newWorld().class("com.acme.x", "Foo", domain.TypeMeta{})
	module, err := w.GetOrBuild(context.Background(), project("acme"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := modelcache.NewAssembler(w, w, w, quietLogger(t), modelcache.AssemblerConfig{})
	_, err = a.Assemble(ctx, module, domain.NewPackageFilter(), nil)
	require.ErrorIs(t, err, context.Canceled)
}
