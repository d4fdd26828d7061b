package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Run level messages (info)
		"Probing %s":                                     "%s を解析中",
		"Input: %dx%d, %.2f fps, %s frames":              "入力: %dx%d, %.2f fps, %s フレーム",
		"Selecting frames: window size %d, frame skip %d": "フレーム選択中: ウィンドウサイズ %d, フレームスキップ %d",
		"Selected %d of %d frames in %d windows":         "%d 個のウィンドウで %d / %d フレームを選択しました",
		"Output saved to %s":                             "出力を %s に保存しました",
		"Summary saved to %s":                            "サマリーを %s に保存しました",
		"Interrupted, shutting down...":                  "中断されました。シャットダウン中...",
		"No frames were selected; no output written":     "フレームが選択されなかったため出力はありません",

		// Selection stage (debug)
		"Window %d: seeded reference with frame %d":                "ウィンドウ %d: フレーム %d を基準に設定",
		"Window %d: selected frame %d at distance %.4f":            "ウィンドウ %d: フレーム %d を選択 (距離 %.4f)",
		"Window %d candidate %d (frame %d): distance %.4f":         "ウィンドウ %d 候補 %d (フレーム %d): 距離 %.4f",
		"Probed %s from sample tables: %dx%d, %d frames":           "%s をサンプルテーブルから解析: %dx%d, %d フレーム",
		"Sample table probe failed, falling back to ffprobe: %v":   "サンプルテーブルの解析に失敗。ffprobe を使用します: %v",

		// Warnings
		"Failed to save debug frame: %s":                 "デバッグフレームの保存に失敗しました: %s",
		"Failed to save selections: %s":                  "選択結果の保存に失敗しました: %s",
		"Frame count unknown, progress is indeterminate": "フレーム数が不明なため進捗は概算です",

		// Errors
		"Failed to finalize output: %s": "出力の確定に失敗しました: %s",
		"Failed: %s":                    "失敗しました: %s",
	})
}
