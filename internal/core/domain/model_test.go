package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/oracle/internal/core/domain"
)

func TestParseTypeRef(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.TypeRef
		wantErr bool
	}{
		{input: "time.Time", want: domain.TypeRef{Package: "time", Name: "Time"}},
		{input: "math/big.Int", want: domain.TypeRef{Package: "math/big", Name: "Int"}},
		{input: "example.com/acme/orders.Order", want: domain.TypeRef{Package: "example.com/acme/orders", Name: "Order"}},
		{input: "java.lang.Number", want: domain.TypeRef{Package: "java.lang", Name: "Number"}},
		{input: "  time.Duration ", want: domain.TypeRef{Package: "time", Name: "Duration"}},
		{input: "Number", wantErr: true},
		{input: "example.com/acme", wantErr: true},
		{input: "time.", wantErr: true},
		{input: ".Time", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseTypeRef(tt.input)
			if tt.wantErr {
				require.ErrorContains(t, err, domain.ErrInvalidTypeName.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Package+"."+tt.want.Name, got.Qualified())
		})
	}
}

func TestSourceOrigin_String(t *testing.T) {
	assert.Equal(t, "project", domain.OriginProject.String())
	assert.Equal(t, "dependency", domain.OriginDependency.String())
	assert.Equal(t, "unknown", domain.OriginUnknown.String())

	text, err := domain.OriginDependency.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "dependency", string(text))

	var origin domain.SourceOrigin
	require.NoError(t, origin.UnmarshalText([]byte("project")))
	assert.Equal(t, domain.OriginProject, origin)
	require.NoError(t, origin.UnmarshalText([]byte("bogus")))
	assert.Equal(t, domain.OriginUnknown, origin)
}

func TestModelBuilder_Build(t *testing.T) {
	project := domain.NewProjectIdentity("/work/acme", "com.acme")

	model := domain.NewModelBuilder(project).
		WithFingerprint("abc").
		AddPackages("com.acme.x", "com.acme.a", "com.acme.x").
		AddType(domain.TypeEntry{Name: "com.acme.x.Foo", Kind: "struct", Origin: domain.OriginProject}).
		AddType(domain.TypeEntry{Name: "com.acme.a.Bar", Event: true, Origin: domain.OriginProject}).
		AddType(domain.TypeEntry{Name: "java.lang.Number", Origin: domain.OriginDependency}).
		Build()

	assert.True(t, model.Project().Equal(project))
	assert.Equal(t, "abc", model.Fingerprint())
	assert.False(t, model.BuiltAt().IsZero())
	assert.Equal(t, []string{"com.acme.a", "com.acme.x"}, model.Packages())
	require.Equal(t, 3, model.Len())

	names := make([]string, 0, model.Len())
	for _, e := range model.Types() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"com.acme.a.Bar", "com.acme.x.Foo", "java.lang.Number"}, names)

	foo, ok := model.Type("com.acme.x.Foo")
	require.True(t, ok)
	assert.Equal(t, "com.acme.x", foo.Package)
	assert.Equal(t, "Foo", foo.SimpleName)

	assert.Len(t, model.ProjectTypes(), 2)
	assert.Len(t, model.EventTypes(), 1)
	deps := model.DependencyTypes()
	require.Len(t, deps, 1)
	assert.Equal(t, "Number", deps[0].SimpleName)
}

func TestModelBuilder_DeduplicatesByName(t *testing.T) {
	project := domain.NewProjectIdentity("/work/acme", "com.acme")

	model := domain.NewModelBuilder(project).
		AddType(domain.TypeEntry{Name: "com.acme.x.Foo", Origin: domain.OriginProject, Event: true}).
		AddType(domain.TypeEntry{Name: "com.acme.x.Foo", Origin: domain.OriginDependency}).
		Build()

	require.Equal(t, 1, model.Len())
	foo, ok := model.Type("com.acme.x.Foo")
	require.True(t, ok)
	assert.Equal(t, domain.OriginDependency, foo.Origin)
	assert.False(t, foo.Event)
}

func TestDerivedModel_IsImmutable(t *testing.T) {
	project := domain.NewProjectIdentity("/work/acme", "com.acme")
	builder := domain.NewModelBuilder(project).
		AddPackages("com.acme.x").
		AddType(domain.TypeEntry{Name: "com.acme.x.Foo", Origin: domain.OriginProject})

	model := builder.Build()

	// Mutating returned slices must not leak into the model.
	types := model.Types()
	types[0].Name = "mutated"
	packages := model.Packages()
	packages[0] = "mutated"

	// Reusing the builder must not leak into the model either.
	builder.AddType(domain.TypeEntry{Name: "com.acme.x.Bar", Origin: domain.OriginProject})

	assert.Equal(t, 1, model.Len())
	assert.Equal(t, "com.acme.x.Foo", model.Types()[0].Name)
	assert.Equal(t, []string{"com.acme.x"}, model.Packages())
	_, ok := model.Type("mutated")
	assert.False(t, ok)
}
