package models

import "time"

// VideoInfo - метаданные ролика, нужные для урока
type VideoInfo struct {
	Title    string
	Duration time.Duration
}

// Minutes округляет длительность вверх до минут
func (v VideoInfo) Minutes() int {
	if v.Duration <= 0 {
		return 0
	}
	return int((v.Duration + time.Minute - 1) / time.Minute)
}
