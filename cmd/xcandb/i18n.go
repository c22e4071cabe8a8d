// Package main provides localization for the xcandb CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"View, crop and blur images in an X11 window": "X11ウィンドウで画像を表示・切り抜き・ぼかし",
		"xcandb version %s":                           "xcandb バージョン %s",

		// Flags
		"Image file to open.":                                                "開く画像ファイル",
		"Start in fullscreen mode.":                                          "フルスクリーンで起動",
		"X display to connect to (default: $DISPLAY).":                       "接続するXディスプレイ（デフォルト: $DISPLAY）",
		"Configuration file (default: $XDG_CONFIG_HOME/xcandb/config.yaml).": "設定ファイル（デフォルト: $XDG_CONFIG_HOME/xcandb/config.yaml）",
		"Never use shared memory surfaces.":                                  "共有メモリを使用しない",
		"Number of blur passes for right-button drags.":                      "右ドラッグ時のぼかし回数",
		"Log save results instead of sending desktop notifications.":         "保存結果をデスクトップ通知ではなくログに出力",
		"Log level (debug, info, warn, error).":                              "ログレベル（debug, info, warn, error）",
		"Suppress all log output.":                                           "全てのログ出力を抑制",
		"Show version information.":                                          "バージョン情報を表示",
	})
}
