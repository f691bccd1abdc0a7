// Package main provides localization for the nvencprobe CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Output":  "出力",
		"Driver":  "ドライバ",
		"Logging": "ログ",

		// Root command
		"Report the hardware video codecs each NVIDIA GPU can encode": "各 NVIDIA GPU がエンコードできるハードウェア動画コーデックを表示",

		// Flags
		"Report format (text, yaml, json)":             "レポート形式（text, yaml, json）",
		"Write the report to a file instead of stdout": "レポートを標準出力ではなくファイルに書き込む",
		"NVENC API version to request (major.minor)":   "要求する NVENC API バージョン（major.minor）",
		"CUDA driver library name or path":             "CUDA ドライバライブラリの名前またはパス",
		"NVENC library name or path":                   "NVENC ライブラリの名前またはパス",
		"Log level (debug, info, warn, error)":         "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                      "全てのログ出力を抑制",

		// Supports command
		"Exit 0 when any device can encode the codec, 1 otherwise": "いずれかのデバイスがコーデックをエンコードできれば 0、できなければ 1 で終了",
		"Expected exactly one codec (H264, HEVC, AV1)":             "コーデックを 1 つだけ指定してください（H264, HEVC, AV1）",
		"Unknown codec %q (H264, HEVC, AV1)":                       "不明なコーデック %q（H264, HEVC, AV1）",

		// Requirements command
		"Show the minimum driver for the requested API version": "要求する API バージョンに必要な最小ドライバを表示",
		"NVENC API %s on %s requires driver %s or newer":        "%[2]s の NVENC API %[1]s にはドライバ %[3]s 以降が必要です",

		// Version command
		"Show version information":             "バージョン情報を表示",
		"nvencprobe version %s (NVENC API %s)": "nvencprobe バージョン %s (NVENC API %s)",
	})
}
