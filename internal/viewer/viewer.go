package viewer

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Opener はファイルを外部のビューアで開くのだ。
type Opener interface {
	Open(path string) error
}

// SystemOpener は OS 標準のコマンドでファイルを開く Opener なのだ。
type SystemOpener struct {
	goos string
}

// NewSystemOpener は実行中の OS に合わせた SystemOpener を返すのだ。
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{goos: runtime.GOOS}
}

// Command は OS ごとの起動コマンドと引数を返すのだ。
func (o *SystemOpener) Command(path string) (string, []string) {
	switch o.goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open はビューアを起動して、終了を待たずに戻るのだ。
func (o *SystemOpener) Open(path string) error {
	name, args := o.Command(path)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ビューアの起動に失敗したのだ (%s): %w", name, err)
	}
	slog.Debug("ビューアを起動したのだ", "command", name, "path", path, "pid", cmd.Process.Pid)
	go cmd.Wait()
	return nil
}
