package xlogconf_test

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/logkit/pkg/xlevel"
	"github.com/omeyang/logkit/pkg/xlogconf"
	"github.com/omeyang/logkit/pkg/xroute"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "logging.yaml")
	writeConfig(t, path, "level: info\n")

	r, err := xroute.New(xroute.WithOutput(io.Discard))
	require.NoError(t, err)
	defer r.Close()

	var mu sync.Mutex
	var reloadCount int
	var lastErr error

	w, err := xlogconf.Watch(path, r, func(s *xlogconf.Settings, err error) {
		mu.Lock()
		defer mu.Unlock()
		reloadCount++
		lastErr = err
	})
	require.NoError(t, err)

	w.StartAsync()
	defer func() { _ = w.Stop() }()

	// 等待监视器启动
	time.Sleep(50 * time.Millisecond)

	writeConfig(t, path, "level: error\n")

	// 等待重载（防抖 100ms + 一些延迟）
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	assert.GreaterOrEqual(t, reloadCount, 1, "callback should be called at least once")
	assert.NoError(t, lastErr)
	mu.Unlock()

	// 新配置已应用到 Router
	assert.Equal(t, xlevel.Error, r.MinLevel())
}

func TestWatch_CallbackOnReloadError(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "logging.yaml")
	writeConfig(t, path, "level: info\n")

	r, err := xroute.New(xroute.WithOutput(io.Discard))
	require.NoError(t, err)
	defer r.Close()

	errCh := make(chan error, 4)
	w, err := xlogconf.Watch(path, r, func(s *xlogconf.Settings, err error) {
		if err != nil {
			assert.Nil(t, s, "settings must be nil on failed reload")
		}
		errCh <- err
	}, xlogconf.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	w.StartAsync()
	defer func() { _ = w.Stop() }()
	time.Sleep(50 * time.Millisecond)

	// 写入无法解析的内容：重载失败，Router 保持旧配置
	writeConfig(t, path, "level: [unclosed\n")

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("callback was not invoked")
	}
	assert.Equal(t, xlevel.Trace, r.MinLevel())
}

func TestWatch_ArgumentErrors(t *testing.T) {
	r, err := xroute.New(xroute.WithOutput(io.Discard))
	require.NoError(t, err)
	defer r.Close()

	_, err = xlogconf.Watch("", r, nil)
	assert.ErrorIs(t, err, xlogconf.ErrEmptyPath)

	_, err = xlogconf.Watch("/tmp/logging.yaml", nil, nil)
	assert.ErrorIs(t, err, xlogconf.ErrNilRouter)

	_, err = xlogconf.Watch("/tmp/logging.toml", r, nil)
	assert.ErrorIs(t, err, xlogconf.ErrUnsupportedFormat)
}

func TestWatch_StopIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "logging.yaml")
	writeConfig(t, path, "level: info\n")

	r, err := xroute.New(xroute.WithOutput(io.Discard))
	require.NoError(t, err)
	defer r.Close()

	w, err := xlogconf.Watch(path, r, nil)
	require.NoError(t, err)

	w.StartAsync()
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop()) // 幂等
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "logging.yaml")
	writeConfig(t, path, "level: info\n")

	r, err := xroute.New(xroute.WithOutput(io.Discard))
	require.NoError(t, err)
	defer r.Close()

	var count int
	var mu sync.Mutex
	w, err := xlogconf.Watch(path, r, func(*xlogconf.Settings, error) {
		mu.Lock()
		count++
		mu.Unlock()
	}, xlogconf.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	w.StartAsync()
	defer func() { _ = w.Stop() }()
	time.Sleep(50 * time.Millisecond)

	// 同目录的无关文件不触发重载
	writeConfig(t, filepath.Join(tmpDir, "other.yaml"), "level: error\n")
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	assert.Zero(t, count)
	mu.Unlock()
}
