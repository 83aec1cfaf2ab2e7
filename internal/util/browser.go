package util

import (
	"os/exec"
	"runtime"
)

// browserCommand 返回当前平台打开 URL 的首选命令
func browserCommand(goos, url string) *exec.Cmd {
	switch goos {
	case "windows":
		// rundll32 比 cmd /c start 更稳定
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		return exec.Command("open", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

// fallbackBrowsers 首选命令失败后依次尝试的命令
func fallbackBrowsers(goos string) []string {
	switch goos {
	case "windows":
		return []string{"explorer"}
	case "linux":
		return []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"}
	}
	return nil
}

// OpenBrowser 用系统默认浏览器打开看板，失败时尝试备选浏览器
func OpenBrowser(url string) error {
	err := browserCommand(runtime.GOOS, url).Start()
	if err == nil {
		return nil
	}
	for _, name := range fallbackBrowsers(runtime.GOOS) {
		if exec.Command(name, url).Start() == nil {
			return nil
		}
	}
	return err
}
