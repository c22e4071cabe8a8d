package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Application level messages (info)
		"Opened %s":                     "%s を開きました",
		"Saved %s":                      "%s に保存しました",
		"Interrupted, shutting down...": "中断されました。終了中...",
		"Window closed":                 "ウィンドウが閉じられました",
		"Event loop cancelled":          "イベントループを中断しました",

		// Canvas component
		"Loaded %s: %dx%d, %s surface":        "%s を読み込みました: %dx%d, %s サーフェス",
		"Cropped to %dx%d":                    "%dx%d に切り抜きました",
		"Blurred %dx%d at (%d,%d), %d passes": "%dx%d を (%d,%d) でぼかしました (%d 回)",

		// Surface component
		"Using shared memory surface %dx%d":                            "共有メモリサーフェスを使用 %dx%d",
		"Using local surface %dx%d":                                    "ローカルサーフェスを使用 %dx%d",
		"Shared memory unavailable, falling back to local surface: %v": "共有メモリを利用できないため、ローカルサーフェスに切り替えます: %v",

		// X11 component
		"Connected: depth %d, max request %d bytes, shared pixmaps %t": "接続しました: 色深度 %d, 最大リクエスト %d バイト, 共有ピクスマップ %t",
		"MIT-SHM unavailable: %v":                                      "MIT-SHM を利用できません: %v",
		"MIT-SHM version query failed: %v":                             "MIT-SHM のバージョン取得に失敗しました: %v",
		"X error: %v":                                                  "Xエラー: %v",
		"Keyboard mapping refresh failed: %v":                          "キーボードマッピングの更新に失敗しました: %v",

		// Viewer component
		"Edit skipped: %v":        "編集をスキップしました: %v",
		"Prompt failed: %v":       "入力プロンプトに失敗しました: %v",
		"Save cancelled":          "保存をキャンセルしました",
		"Cannot expand %s: %v":    "%s を展開できません: %v",
		"Not writable: %s":        "書き込みできません: %s",
		"Save failed: %v":         "保存に失敗しました: %v",
		"Notification failed: %v": "通知に失敗しました: %v",

		// Notifications
		"%s: %s":                                "%s: %s",
		"Desktop notifications unavailable: %v": "デスクトップ通知を利用できません: %v",
		"Saved image to %s":                     "画像を %s に保存しました",
		"Cannot save to %s":                     "%s に保存できません",
		"Saving to %s failed":                   "%s への保存に失敗しました",
		"Could not expand path %s":              "パス %s を展開できません",
		"Could not ask for a file name":         "ファイル名を入力できませんでした",
		"Not enough memory for this edit":       "この編集に必要なメモリが足りません",

		// Headless editing
		"Loaded %s: %dx%d":                         "%s を読み込みました: %dx%d",
		"Applied %d of %d operations":              "%d / %d 件の操作を適用しました",
		"Preview written to %s":                    "プレビューを %s に書き出しました",
		"Result: %dx%d, %d operations applied":     "結果: %dx%d, %d 件の操作を適用",
		"Skipping %s: nothing left after clamping": "%s をスキップ: 範囲外です",
		"Skipping %s: covers the whole image":      "%s をスキップ: 画像全体と同じ範囲です",

		// Headless CLI
		"Crop and blur images from the command line":              "コマンドラインで画像を切り抜き・ぼかし",
		"Output image path (.png, .bmp, .tif)":                    "出力画像のパス（.png, .bmp, .tif）",
		"Write the input with the operation rectangles outlined":  "操作範囲を枠で示したプレビューを書き出す",
		"Maximum preview width (0 keeps the input width)":         "プレビューの最大幅（0 で元の幅）",
		"Blur passes for operations without an explicit strength": "強さ未指定のぼかし操作の回数",
		"Row-band workers per blur pass (0 = one per CPU)":        "ぼかし1回あたりのワーカー数（0 = CPU数）",
		"Log level (debug, info, warn, error)":                    "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                 "全てのログ出力を抑制",
		"An input image is required":                              "入力画像が必要です",
		"Nothing to write: give --output or --preview":            "出力先がありません: --output か --preview を指定してください",
	})
}
