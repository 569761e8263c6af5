package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"
)

// captureFrame rasterizes the canvas, one 4x4 block per Braille dot.
func (m *Model) captureFrame() {
	const charW, charH = 8, 16
	const dotW, dotH = charW / 2, charH / 4

	img := image.NewPaletted(image.Rect(0, 0, m.width*charW, m.height*charH), color.Palette{color.Black, color.White})
	for y := 0; y < m.height*4; y++ {
		for x := 0; x < m.width*2; x++ {
			if !m.canvas.Lit(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) stopRecording() {
	if !m.recording {
		return
	}
	m.recording = false
	if err := m.saveGIF(); err != nil {
		m.logger.Error("saving recording", "path", m.recordPath, "err", err)
	}
	m.frames = nil
}

func (m *Model) saveGIF() error {
	if len(m.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(m.recordPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
