package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Loader
		"Resolving CUDA driver table":                                 "CUDA ドライバのテーブルを解決中",
		"Resolving NVENC table":                                       "NVENC のテーブルを解決中",
		"The minimum required Nvidia driver for nvenc is %s or newer": "nvenc に必要な Nvidia ドライバは %s 以降です",
		"Failed to release CUDA driver: %s":                           "CUDA ドライバの解放に失敗しました: %s",
		"Failed to release driver libraries: %s":                      "ドライバライブラリの解放に失敗しました: %s",

		// Version negotiation
		"Loaded Nvenc version %d.%d":                              "Nvenc バージョン %d.%d を読み込みました",
		"Creating API instance with function list version 0x%08x": "関数リストバージョン 0x%08x で API インスタンスを作成中",
		"Nvenc initialized successfully":                          "Nvenc の初期化に成功しました",

		// Enumeration
		"Driver reports %d devices": "ドライバが %d 台のデバイスを報告しました",

		// Per-device probe
		"Context 0x%x active for device %d":             "デバイス %[2]d のコンテキスト 0x%[1]x を有効化しました",
		"Context 0x%x released":                         "コンテキスト 0x%x を解放しました",
		"Opened session 0x%x on context 0x%x":           "コンテキスト 0x%[2]x でセッション 0x%[1]x を開きました",
		"Closed session 0x%x":                           "セッション 0x%x を閉じました",
		"Driver returned %d codec GUIDs, %d recognised": "ドライバが %d 個のコーデック GUID を返し、%d 個を認識しました",
		"Driver reported %d codecs for a buffer of %d":  "ドライバが容量 %[2]d のバッファに対し %[1]d 個のコーデックを報告しました",
		"Skipping device %d (%s): %s":                   "デバイス %d (%s) をスキップします: %s",

		// Command
		"Probing with NVENC API %s":     "NVENC API %s で調査中",
		"Probed %d devices":             "%d 台のデバイスを調査しました",
		"Report saved to %s":            "レポートを %s に保存しました",
		"Failed to write report: %s":    "レポートの書き込みに失敗しました: %s",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
	})
}
