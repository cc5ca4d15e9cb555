package gui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mathgallery/internal/render"
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else {
		a.drawView()
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) resizeTexture(w, h int) {
	if a.tex.ID != 0 {
		rl.UnloadTexture(a.tex)
	}
	img := rl.GenImageColor(w, h, rl.Black)
	a.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	a.texW, a.texH = w, h
	a.pixels = make([]color.RGBA, w*h)
}

// drawView uploads the raster frame and stretches it over the window.
func (a *App) drawView() {
	sess, ok := a.Host.Session(a.container)
	if !ok {
		return
	}
	r, ok := sess.Renderer.(*render.Raster)
	if !ok {
		return
	}
	img := r.Image()
	if b := img.Bounds(); b.Dx() != a.texW || b.Dy() != a.texH {
		a.resizeTexture(b.Dx(), b.Dy())
	}
	copyPixels(a.pixels, img)
	rl.UpdateTexture(a.tex, a.pixels)
	src := rl.NewRectangle(0, 0, float32(a.texW), float32(a.texH))
	dst := rl.NewRectangle(0, 0, windowW, windowH)
	rl.DrawTexturePro(a.tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func copyPixels(dst []color.RGBA, img *image.RGBA) {
	for i := range dst {
		p := img.Pix[i*4 : i*4+4 : i*4+4]
		dst[i] = color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
}

func toRL(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

func (a *App) DrawHUD() {
	d := a.current()
	a.drawText("mathgallery", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", d.Name), 210, 34, 16, toRL(d.Color))
	a.drawText(d.Description, 30, 64, 14, ColText)

	labels := []string{d.ParamLabel1, d.ParamLabel2}
	values := []float64{a.Params.Param1, a.Params.Param2}
	for i, label := range labels {
		col := ColText
		if i == a.ParamSel {
			col = ColSelect
		}
		bar := strings.Repeat("|", int(values[i]*20))
		a.drawText(fmt.Sprintf("%-18s [%-20s] %3.0f%%", label, bar, values[i]*100), 30, 560+i*24, 16, col)
	}

	a.DrawTelemetry()

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)

	a.drawText("[SPACE] PAUSE  [R] RESET  [N] RANDOM  [ESC] MENU  [Q] QUIT", 700, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

// DrawTelemetry plots recent frame times.
func (a *App) DrawTelemetry() {
	values, history, ok := a.Metrics.Snapshot(a.container)
	if !ok || len(history) < 2 {
		return
	}

	rectX, rectY := 30, 610
	width, height := 400, 50

	minVal, maxVal := history[0], history[0]
	for _, v := range history {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(history))
	for i, val := range history {
		px := float32(rectX) + (float32(i)/float32(len(history)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("%.2fms", values["frame_ms"]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawMenu() {
	a.drawText("mathgallery", 50, 50, 40, ColSelect)
	a.drawText("Select Pattern", 50, 100, 16, ColTextDim)

	y := 160
	for i, d := range a.Patterns {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", d.Name), 50, y, 20, toRL(d.Color))
			a.drawText(d.Description, 420, y+4, 14, ColText)
		} else {
			a.drawText(fmt.Sprintf("  %s", d.Name), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 850, 680, 14, ColTextDim)
}
