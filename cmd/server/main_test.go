package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"gorm.io/gorm"

	"kitchenos/internal/config"
	"kitchenos/internal/server"
)

type stubServer struct {
	startErr    error
	block       chan struct{}
	started     chan struct{}
	stopCalled  bool
	startCalled bool
}

func newStubServer(startErr error, block bool) *stubServer {
	s := &stubServer{startErr: startErr, started: make(chan struct{})}
	if block {
		s.block = make(chan struct{})
	}
	return s
}

func (s *stubServer) Start() error {
	s.startCalled = true
	close(s.started)
	if s.block != nil {
		<-s.block
	}
	return s.startErr
}

func (s *stubServer) Stop() error {
	s.stopCalled = true
	if s.block != nil {
		close(s.block)
	}
	return nil
}

// stubRun replaces every seam of run and restores them when the test ends.
// The returned channel delivers shutdown signals.
func stubRun(t *testing.T, cfg config.Config, srv *stubServer) (chan os.Signal, *server.Config) {
	t.Helper()
	originalLoadConfig := loadConfigFunc
	originalSetLogLevel := setLogLevelFunc
	originalMock := newMockDatabaseFunc
	originalConfigure := configureDatabase
	originalNewServer := newServerFunc
	originalSubscribe := subscribeShutdownSig
	t.Cleanup(func() {
		loadConfigFunc = originalLoadConfig
		setLogLevelFunc = originalSetLogLevel
		newMockDatabaseFunc = originalMock
		configureDatabase = originalConfigure
		newServerFunc = originalNewServer
		subscribeShutdownSig = originalSubscribe
	})

	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) { return &gorm.DB{}, nil }
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) { return &gorm.DB{}, nil }

	built := &server.Config{}
	newServerFunc = func(c server.Config) (serverLifecycle, error) {
		*built = c
		return srv, nil
	}
	signals := make(chan os.Signal, 1)
	subscribeShutdownSig = func() (<-chan os.Signal, func()) { return signals, func() {} }
	return signals, built
}

func TestRunServesMockKitchenUntilSignal(t *testing.T) {
	location, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	cfg := config.Config{
		Server:   config.ServerConfig{Addr: ":9000", ShutdownTimeout: 3 * time.Second},
		Database: config.DatabaseConfig{UseMock: true},
		Logging:  config.LoggingConfig{Level: "debug"},
		Auth:     config.AuthConfig{Session: config.SessionConfig{CookieName: "kitchen", CookieSecure: true}},
		Reports:  config.ReportsConfig{Location: location, ProductName: "Mutfak"},
		Metrics:  config.MetricsConfig{Enabled: true},
	}
	srv := newStubServer(http.ErrServerClosed, true)
	signals, built := stubRun(t, cfg, srv)

	var mockCalled bool
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) {
		mockCalled = true
		return &gorm.DB{}, nil
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		t.Fatal("configureDatabase should not be called when mock is enabled")
		return nil, nil
	}

	go func() {
		<-srv.started
		signals <- syscall.SIGTERM
	}()

	if code := run(context.Background()); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !mockCalled {
		t.Fatal("expected the seeded database to be used")
	}
	if !srv.startCalled || !srv.stopCalled {
		t.Fatal("expected server start and stop to be invoked")
	}
	if built.Addr != ":9000" || built.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected server settings: %+v", built)
	}
	if built.Session.CookieName != "kitchen" || !built.Session.CookieSecure {
		t.Fatalf("session settings not forwarded: %+v", built.Session)
	}
	if built.Reports.Location != location || built.Reports.ProductName != "Mutfak" {
		t.Fatalf("report settings not forwarded: %+v", built.Reports)
	}
	if !built.MetricsEnabled || built.Store == nil {
		t.Fatalf("expected metrics and a store, got %+v", built)
	}
}

func TestRunExitCodes(t *testing.T) {
	base := config.Config{
		Server:   config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{URL: "postgres://kitchen"},
		Logging:  config.LoggingConfig{Level: "info"},
	}

	tests := []struct {
		name     string
		prepare  func()
		srv      *stubServer
		wantCode int
		wantStop bool
	}{
		{
			name:     "listener failure",
			srv:      newStubServer(errors.New("listener failure"), false),
			wantCode: 1,
		},
		{
			name:     "server exits cleanly",
			srv:      newStubServer(nil, false),
			wantCode: 0,
		},
		{
			name: "database unavailable",
			prepare: func() {
				configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
					return nil, errors.New("db connection refused")
				}
			},
			srv:      newStubServer(nil, false),
			wantCode: 1,
		},
		{
			name: "invalid log level",
			prepare: func() {
				setLogLevelFunc = func(string) error { return errors.New("invalid level") }
			},
			srv:      newStubServer(nil, false),
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubRun(t, base, tt.srv)
			if tt.prepare != nil {
				tt.prepare()
			}
			if code := run(context.Background()); code != tt.wantCode {
				t.Fatalf("expected exit code %d, got %d", tt.wantCode, code)
			}
			if tt.srv.stopCalled != tt.wantStop {
				t.Fatalf("stop called = %t, want %t", tt.srv.stopCalled, tt.wantStop)
			}
		})
	}
}
