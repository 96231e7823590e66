package overlay

import (
	"context"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/jonboulle/clockwork"

	"pomodoro/internal/notify"
	"pomodoro/internal/ui/animation"
	"pomodoro/resources"
)

// AutoHide is how long the banner stays up.
const AutoHide = 5 * time.Second

var bannerGreen = color.NRGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}

// Banner is the "Timer Complete!" notice shown at the top of the main window.
type Banner struct {
	mu         sync.Mutex
	clock      clockwork.Clock
	engine     *animation.Engine
	background *canvas.Rectangle
	title      *canvas.Text
	body       *canvas.Text
	root       *fyne.Container
	hideTimer  clockwork.Timer
	cancelCtx  context.CancelFunc
}

// NewBanner creates a hidden banner.
func NewBanner(clock clockwork.Clock) *Banner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	banner := &Banner{clock: clock}

	banner.background = canvas.NewRectangle(bannerGreen)
	banner.background.CornerRadius = 8

	banner.title = canvas.NewText("Timer Complete!", color.White)
	banner.title.TextStyle = fyne.TextStyle{Bold: true}
	banner.title.TextSize = 16

	banner.body = canvas.NewText("", color.White)
	banner.body.TextSize = 13

	icon := widget.NewIcon(resources.MustIcon(resources.IconCheck))
	text := container.NewVBox(banner.title, banner.body)
	content := container.NewPadded(container.NewHBox(icon, text, layout.NewSpacer()))
	banner.root = container.NewStack(banner.background, content)
	banner.root.Hide()

	banner.engine = animation.New(animation.DefaultConfig(), clock, func(alpha float64) {
		fyne.Do(func() { banner.setAlpha(alpha) })
	})
	return banner
}

// Object returns the canvas object to place in a layout.
func (banner *Banner) Object() fyne.CanvasObject {
	return banner.root
}

// Show raises the banner for message and hides it after AutoHide.
func (banner *Banner) Show(message notify.Message, reducedMotion bool) {
	banner.mu.Lock()
	banner.stopLocked()
	ctx, cancel := context.WithCancel(context.Background())
	banner.cancelCtx = cancel
	banner.hideTimer = banner.clock.AfterFunc(AutoHide, banner.Hide)
	banner.mu.Unlock()

	fyne.Do(func() {
		banner.title.Text = "Timer Complete!"
		banner.body.Text = message.Title
		banner.title.Refresh()
		banner.body.Refresh()
		banner.root.Show()
	})
	banner.engine.Start(ctx, reducedMotion)
}

// Hide removes the banner and stops the pulse.
func (banner *Banner) Hide() {
	banner.mu.Lock()
	banner.stopLocked()
	banner.mu.Unlock()

	fyne.Do(func() {
		banner.root.Hide()
		banner.setAlpha(1)
	})
}

// Visible reports whether the banner is up.
func (banner *Banner) Visible() bool {
	return banner.root.Visible()
}

// Alpha is the current background opacity in [0, 1].
func (banner *Banner) Alpha() float64 {
	return float64(banner.background.FillColor.(color.NRGBA).A) / 255
}

func (banner *Banner) stopLocked() {
	if banner.hideTimer != nil {
		banner.hideTimer.Stop()
		banner.hideTimer = nil
	}
	if banner.cancelCtx != nil {
		banner.cancelCtx()
		banner.cancelCtx = nil
	}
	banner.engine.Stop()
}

func (banner *Banner) setAlpha(alpha float64) {
	fill := bannerGreen
	fill.A = uint8(max(0, min(1, alpha)) * 255)
	banner.background.FillColor = fill
	canvas.Refresh(banner.background)
}
