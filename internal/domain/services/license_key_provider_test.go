package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivvenit/acf-pro-installer/internal/domain/entities"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces"
)

// fakeEnv is an isolated environment
type fakeEnv map[string]string

func (e fakeEnv) Lookup(name string) (string, bool) {
	v, ok := e[name]
	return v, ok
}

func (e fakeEnv) Setenv(name, value string) error {
	e[name] = value
	return nil
}

// fakeKeyFile mimics a .env file loaded without overwriting
type fakeKeyFile struct {
	env   fakeEnv
	vars  map[string]string
	err   error
	loads int
}

func (f *fakeKeyFile) Load(_ string) error {
	f.loads++
	if f.err != nil {
		return f.err
	}
	for k, v := range f.vars {
		if _, set := f.env[k]; !set {
			f.env[k] = v
		}
	}
	return nil
}

type fakeHostConfig struct {
	values map[string]string
	err    error
	reads  int
}

func (c *fakeHostConfig) Get(key string) (string, bool, error) {
	c.reads++
	if c.err != nil {
		return "", false, c.err
	}
	v, ok := c.values[key]
	return v, ok, nil
}

type staticProvider struct {
	value string
	ok    bool
	calls int
}

func (p *staticProvider) Provide() (string, bool) {
	p.calls++
	return p.value, p.ok
}

func TestEnvironmentProvider(t *testing.T) {
	tests := []struct {
		name   string
		env    fakeEnv
		want   string
		wantOK bool
	}{
		{name: "set", env: fakeEnv{"ACF_PRO_KEY": "ABC123"}, want: "ABC123", wantOK: true},
		{name: "unset", env: fakeEnv{}, want: "", wantOK: false},
		{name: "empty", env: fakeEnv{"ACF_PRO_KEY": ""}, want: "", wantOK: false},
		{name: "other variable", env: fakeEnv{"OTHER": "x"}, want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewEnvironmentProvider(tt.env, "ACF_PRO_KEY").Provide()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestKeyFileProvider_LoadsBeforeLookup(t *testing.T) {
	env := fakeEnv{}
	file := &fakeKeyFile{env: env, vars: map[string]string{"ACF_PRO_KEY": "FROM_FILE"}}

	got, ok := NewKeyFileProvider(env, "ACF_PRO_KEY", file, "/project", &interfaces.NoOpLogger{}).Provide()

	require.True(t, ok)
	assert.Equal(t, "FROM_FILE", got)
	assert.Equal(t, 1, file.loads)
}

func TestKeyFileProvider_LoadErrorIsAbsence(t *testing.T) {
	env := fakeEnv{}
	file := &fakeKeyFile{env: env, err: errors.New("unexpected character")}

	got, ok := NewKeyFileProvider(env, "ACF_PRO_KEY", file, "/project", &interfaces.NoOpLogger{}).Provide()

	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestHostConfigProvider(t *testing.T) {
	tests := []struct {
		name   string
		config *fakeHostConfig
		want   string
		wantOK bool
	}{
		{name: "set", config: &fakeHostConfig{values: map[string]string{"acf-pro-key": "CFG"}}, want: "CFG", wantOK: true},
		{name: "missing", config: &fakeHostConfig{values: map[string]string{}}, wantOK: false},
		{name: "empty", config: &fakeHostConfig{values: map[string]string{"acf-pro-key": ""}}, wantOK: false},
		{name: "read error", config: &fakeHostConfig{err: errors.New("invalid json")}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewHostConfigProvider(tt.config, "acf-pro-key", &interfaces.NoOpLogger{}).Provide()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestProviderChain_FirstSuccessWins(t *testing.T) {
	empty := &staticProvider{value: "", ok: true}
	absent := &staticProvider{}
	winner := &staticProvider{value: "WIN", ok: true}
	never := &staticProvider{value: "LATE", ok: true}

	chain := NewProviderChain().
		Add(entities.SourceEnvironment, empty).
		Add(entities.SourceKeyFile, absent).
		Add(entities.SourceHostConfig, winner).
		Add(entities.SourceHostConfig, never)

	key, source, ok := chain.Resolve()

	require.True(t, ok)
	assert.Equal(t, "WIN", key)
	assert.Equal(t, entities.SourceHostConfig, source)
	assert.Equal(t, 1, empty.calls)
	assert.Equal(t, 1, absent.calls)
	assert.Equal(t, 0, never.calls)
}

func TestProviderChain_Empty(t *testing.T) {
	key, ok := NewProviderChain().Provide()

	assert.False(t, ok)
	assert.Empty(t, key)
}

func TestDefaultProviderChain_Precedence(t *testing.T) {
	tests := []struct {
		name       string
		env        fakeEnv
		fileVars   map[string]string
		hostConfig map[string]string
		want       string
		wantSource entities.LicenseKeySource
		wantOK     bool
	}{
		{
			name:       "environment beats key file",
			env:        fakeEnv{"ACF_PRO_KEY": "ENV"},
			fileVars:   map[string]string{"ACF_PRO_KEY": "FILE"},
			hostConfig: map[string]string{"acf-pro-key": "CFG"},
			want:       "ENV",
			wantSource: entities.SourceEnvironment,
			wantOK:     true,
		},
		{
			name:       "key file beats host config",
			env:        fakeEnv{},
			fileVars:   map[string]string{"ACF_PRO_KEY": "FILE"},
			hostConfig: map[string]string{"acf-pro-key": "CFG"},
			want:       "FILE",
			wantSource: entities.SourceKeyFile,
			wantOK:     true,
		},
		{
			name:       "exported empty variable is not overwritten by key file",
			env:        fakeEnv{"ACF_PRO_KEY": ""},
			fileVars:   map[string]string{"ACF_PRO_KEY": "FILE"},
			hostConfig: map[string]string{"acf-pro-key": "CFG"},
			want:       "CFG",
			wantSource: entities.SourceHostConfig,
			wantOK:     true,
		},
		{
			name:       "host config as last resort",
			env:        fakeEnv{},
			hostConfig: map[string]string{"acf-pro-key": "CFG"},
			want:       "CFG",
			wantSource: entities.SourceHostConfig,
			wantOK:     true,
		},
		{
			name:       "nothing anywhere",
			env:        fakeEnv{},
			hostConfig: map[string]string{},
			wantSource: entities.SourceNone,
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewDefaultProviderChain(ProviderChainConfig{
				Env:        tt.env,
				KeyFile:    &fakeKeyFile{env: tt.env, vars: tt.fileVars},
				KeyFileDir: "/project",
				HostConfig: &fakeHostConfig{values: tt.hostConfig},
			})

			key, source, ok := chain.Resolve()
			assert.Equal(t, tt.want, key)
			assert.Equal(t, tt.wantSource, source)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestDefaultProviderChain_OptionalProviders(t *testing.T) {
	env := fakeEnv{}

	chain := NewDefaultProviderChain(ProviderChainConfig{Env: env})
	assert.Equal(t, []entities.LicenseKeySource{entities.SourceEnvironment}, chain.Sources())

	chain = NewDefaultProviderChain(ProviderChainConfig{
		Env:        env,
		KeyFile:    &fakeKeyFile{env: env},
		HostConfig: &fakeHostConfig{},
	})
	assert.Equal(t, []entities.LicenseKeySource{
		entities.SourceEnvironment,
		entities.SourceKeyFile,
		entities.SourceHostConfig,
	}, chain.Sources())
	assert.Equal(t, 3, chain.Len())
}

func TestDefaultProviderChain_CustomNames(t *testing.T) {
	env := fakeEnv{"MY_KEY": "CUSTOM", "ACF_PRO_KEY": "DEFAULT"}
	config := &fakeHostConfig{values: map[string]string{"my-key": "CFG"}}

	chain := NewDefaultProviderChain(ProviderChainConfig{Env: env, EnvVar: "MY_KEY", HostConfig: config, ConfigKey: "my-key"})
	key, ok := chain.Provide()
	require.True(t, ok)
	assert.Equal(t, "CUSTOM", key)

	delete(env, "MY_KEY")
	key, _, ok = chain.Resolve()
	require.True(t, ok)
	assert.Equal(t, "CFG", key)
}

func TestDefaultProviderChain_HostConfigNotReadWhenEnvironmentWins(t *testing.T) {
	env := fakeEnv{"ACF_PRO_KEY": "ENV"}
	file := &fakeKeyFile{env: env}
	config := &fakeHostConfig{}

	_, ok := NewDefaultProviderChain(ProviderChainConfig{Env: env, KeyFile: file, HostConfig: config}).Provide()

	require.True(t, ok)
	assert.Equal(t, 0, file.loads)
	assert.Equal(t, 0, config.reads)
}
