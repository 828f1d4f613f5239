// Package audio 合成备用音效
//
// 资源目录中找不到音效文件时，用简单的振荡器拼出短促的提示音，
// 渲染为 16 位小端立体声 PCM，直接交给 ebiten 的 audio.Player 播放。
package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate 合成与播放统一使用的采样率
const SampleRate = beep.SampleRate(48000)

// bytesPerFrame 16 位立体声每帧字节数
const bytesPerFrame = 4

// WaveType 振荡器波形
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// oscillator 无限长的周期波形
type oscillator struct {
	freq  float64
	phase float64
	wave  WaveType
	rate  beep.SampleRate
}

func newOscillator(freq float64, wave WaveType, rate beep.SampleRate) *oscillator {
	return &oscillator{freq: freq, wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		var val float64
		switch o.wave {
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		default:
			val = math.Sin(2 * math.Pi * o.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// fade 对定长流施加线性淡入淡出，避免音符首尾的爆音
type fade struct {
	streamer beep.Streamer
	position int
	total    int
	ramp     int
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if f.position < f.ramp {
			vol = float64(f.position) / float64(f.ramp)
		}
		if remaining := f.total - f.position; remaining < f.ramp {
			vol = math.Min(vol, float64(remaining)/float64(f.ramp))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// Note 一个音符
type Note struct {
	Frequency float64
	Duration  time.Duration
	Wave      WaveType
}

// Cue 依次播放的一组音符
type Cue struct {
	Notes  []Note
	Volume float64 // 线性音量 0.0 ~ 1.0
}

// CorrectCue 接住同类型元素球时的上行提示音
func CorrectCue() Cue {
	return Cue{
		Notes: []Note{
			{Frequency: 660, Duration: 70 * time.Millisecond, Wave: WaveSine},
			{Frequency: 990, Duration: 120 * time.Millisecond, Wave: WaveSine},
		},
		Volume: 0.6,
	}
}

// WrongCue 接错或漏接时的下行提示音
func WrongCue() Cue {
	return Cue{
		Notes: []Note{
			{Frequency: 196, Duration: 90 * time.Millisecond, Wave: WaveSquare},
			{Frequency: 147, Duration: 160 * time.Millisecond, Wave: WaveTriangle},
		},
		Volume: 0.35,
	}
}

// Duration 所有音符的总时长
func (c Cue) Duration() time.Duration {
	var d time.Duration
	for _, n := range c.Notes {
		d += n.Duration
	}
	return d
}

// Streamer 把音符序列组装成有限长的 beep 流
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(c.Notes))
	ramp := rate.N(5 * time.Millisecond)
	for _, n := range c.Notes {
		total := rate.N(n.Duration)
		parts = append(parts, &fade{
			streamer: beep.Take(total, newOscillator(n.Frequency, n.Wave, rate)),
			total:    total,
			ramp:     max(1, min(ramp, total/2)),
		})
	}
	return &effects.Gain{Streamer: beep.Seq(parts...), Gain: c.Volume - 1}
}

// PCM 以 SampleRate 渲染为 16 位小端立体声 PCM
func (c Cue) PCM() []byte {
	return RenderPCM(c.Streamer(SampleRate))
}

// RenderPCM 把有限长的流完整渲染为 16 位小端立体声 PCM
func RenderPCM(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		if !ok || n == 0 {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}
