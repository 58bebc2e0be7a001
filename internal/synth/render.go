package synth

import (
	"encoding/binary"
	"math"

	"github.com/gopxl/beep"
)

// Samples 把整个流读入内存
func Samples(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

// PCM 把流渲染为 16 位小端立体声 PCM（ebiten 播放器格式）
func PCM(s beep.Streamer) []byte {
	samples := Samples(s)
	out := make([]byte, len(samples)*4)
	for i, smp := range samples {
		binary.LittleEndian.PutUint16(out[i*4:], uint16(ToInt16(smp[0])))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(ToInt16(smp[1])))
	}
	return out
}

// ToInt16 把 [-1, 1] 的采样转为 16 位整数（超出部分截断）
func ToInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
