package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Selection":         "フレーム選択",
		"Video and Quality": "動画と品質",
		"External Tools":    "外部ツール",
		"Debug":             "デバッグ",
		"Logging":           "ログ",

		// Root command
		"Condense a video into a timelapse of its most consistent frames": "動画から一貫性の高いフレームを選んでタイムラプスを作成",
		"lapse splits the input into windows of consecutive frames and keeps, from each window, the frame closest to the previously kept one.": "lapseは入力を連続フレームのウィンドウに分割し、各ウィンドウから直前に採用したフレームに最も近いフレームを残します。",

		// Flags
		"YAML configuration file; flags override its values":                  "YAML設定ファイル（フラグが優先されます）",
		"Frames per window (min: 1)":                                          "1ウィンドウあたりのフレーム数（最小: 1）",
		"Eligible frames discarded before each admitted frame":                "採用する各フレームの前に読み飛ばすフレーム数",
		"Only consider key frames (use --key-frames-only=false for all frames)": "キーフレームのみを対象にする（全フレームは --key-frames-only=false）",
		"Comparison mode (%s)":                                                "比較モード（%s）",
		"Parallel scoring workers (0 = one per CPU)":                          "並列スコアリング数（0 = CPU数）",
		"Output codec (vp9, h264)":                                            "出力コーデック（vp9, h264）",
		"Video CRF value (0-63, lower is better)":                             "動画のCRF値（0-63、低いほど高品質）",
		"Target bitrate in kbps (0 = codec default)":                          "目標ビットレート kbps（0 = コーデック既定値）",
		"Output frame rate (default: source frame rate)":                      "出力フレームレート（既定: 入力のフレームレート）",
		"Path to ffmpeg (falls back to FFMPEG_PATH, then PATH)":               "ffmpegのパス（未指定時はFFMPEG_PATH、PATHの順に検索）",
		"Path to ffprobe (falls back to FFPROBE_PATH, then PATH)":             "ffprobeのパス（未指定時はFFPROBE_PATH、PATHの順に検索）",
		"Save every selected frame and selections.json":                       "選択したフレームとselections.jsonを保存",
		"Directory for debug output":                                          "デバッグ出力先ディレクトリ",
		"Write a Markdown run summary to this path":                           "Markdown形式の実行サマリーを出力するパス",
		"Increase verbosity (-v debug, -vvv per-candidate distances)":         "詳細表示（-v デバッグ、-vvv 候補ごとの距離）",
		"Log level (debug, info, warn, error)":                                "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                             "すべてのログ出力を抑制",
		"Print the version":                                                   "バージョンを表示",

		// Run
		"Selecting":                                        "選択中",
		"Failed to write summary: %s":                      "サマリーの書き込みに失敗しました: %s",
		"ffprobe unavailable: %v":                          "ffprobeを利用できません: %v",
		"%d frames from %d windows written to %s in %.1fs": "%[2]d 個のウィンドウから %[1]d フレームを %[3]s に書き出しました（%.1f秒）",

		// Summary document
		"Timelapse Summary": "タイムラプスのサマリー",
		"Generated":         "作成日時",
		"Input":             "入力",
		"Settings":          "設定",
		"Output":            "出力",
		"Item":              "項目",
		"Value":             "値",
		"File":              "ファイル",
		"Codec":             "コーデック",
		"Resolution":        "解像度",
		"Frame Rate":        "フレームレート",
		"Frames":            "フレーム数",
		"Key Frames":        "キーフレーム数",
		"Mode":              "比較モード",
		"Window Size":       "ウィンドウサイズ",
		"Frame Skip":        "フレームスキップ",
		"Key Frames Only":   "キーフレームのみ",
		"Workers":           "並列数",
		"Windows":           "ウィンドウ数",
		"Frames Decoded":    "デコードしたフレーム数",
		"Frames Selected":   "選択したフレーム数",
		"Mean Distance":     "平均距離",
		"Max Distance":      "最大距離",
		"Elapsed":           "処理時間",
		"CRF":               "CRF",
		"Bitrate":           "ビットレート",
		"Duration":          "再生時間",
		"File Size":         "ファイルサイズ",
		"Auto":              "自動",
		"Default":           "既定値",
		"Unknown":           "不明",
		"N/A":               "N/A",
		"Yes":               "はい",
		"No":                "いいえ",
	})
}
