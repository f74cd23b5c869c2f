// Package term hosts the emulated machine inside a real terminal: it
// renders the console framebuffer with tcell, translates host key presses
// back into keyboard scancodes and drives the periodic timer interrupt.
package term

import (
	"image/color"
	stdsync "sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/MarognaLorenzo/MarOS/device/tty"
	"github.com/MarognaLorenzo/MarOS/device/video/console"
	"github.com/MarognaLorenzo/MarOS/kernel/cpu"
	"github.com/MarognaLorenzo/MarOS/kernel/hal"
	"github.com/MarognaLorenzo/MarOS/kernel/irq"
)

// kbdDataPort is the PS/2 controller data port the keyboard driver
// reads scancodes from.
const kbdDataPort = 0x60

// KeyboardModel emulates the PS/2 controller output buffer: scancodes
// pushed by the host frontend are consumed one at a time by reads from
// the data port.
type KeyboardModel struct {
	mu    stdsync.Mutex
	queue []byte
}

// NewKeyboardModel creates a keyboard controller model and maps it to the
// data port.
func NewKeyboardModel() *KeyboardModel {
	m := &KeyboardModel{}
	cpu.HandlePortRead(kbdDataPort, m.pop)
	return m
}

// Push queues a scancode byte and raises the keyboard interrupt line.
func (m *KeyboardModel) Push(sc byte) {
	m.mu.Lock()
	m.queue = append(m.queue, sc)
	m.mu.Unlock()

	irq.Raise(irq.Keyboard)
}

func (m *KeyboardModel) pop() uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return 0
	}

	sc := m.queue[0]
	m.queue = m.queue[1:]
	return sc
}

// Backend renders the active console to a tcell screen and feeds host
// input into the emulated keyboard.
type Backend struct {
	screen   tcell.Screen
	keyboard *KeyboardModel

	refresh time.Duration
	timerHz int
}

// New initializes the host terminal screen and the keyboard controller
// model.
func New(refresh time.Duration, timerHz int) (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err = screen.Init(); err != nil {
		return nil, err
	}

	return &Backend{
		screen:   screen,
		keyboard: NewKeyboardModel(),
		refresh:  refresh,
		timerHz:  timerHz,
	}, nil
}

// Run drives the frontend loop until ctrl-q is pressed. Key presses are
// translated to scancodes and delivered through the keyboard model; the
// console framebuffer is redrawn at the configured refresh interval.
func (b *Backend) Run() error {
	defer b.screen.Fini()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := b.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	frame := time.NewTicker(b.refresh)
	defer frame.Stop()

	var timerChan <-chan time.Time
	if b.timerHz > 0 {
		timer := time.NewTicker(time.Second / time.Duration(b.timerHz))
		defer timer.Stop()
		timerChan = timer.C
	}

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlQ {
					return nil
				}

				for _, sc := range ScancodesFor(ev) {
					b.keyboard.Push(sc)
				}
			case *tcell.EventResize:
				b.screen.Sync()
			}
		case <-timerChan:
			irq.Raise(irq.Timer)
		case <-frame.C:
			b.draw()
		}
	}
}

// draw copies the console framebuffer to the host screen. The cells are
// snapshotted while holding the terminal lock so a concurrent interrupt
// handler cannot be observed mid-edit.
func (b *Backend) draw() {
	cons := hal.ActiveConsole()
	if cons == nil {
		return
	}

	var (
		width, height = cons.Dimensions(console.Characters)
		cells         = make([]struct {
			ch   byte
			attr uint8
		}, width*height)
	)

	hal.WithTTY(func(tty.Device) {
		for y := uint32(0); y < height; y++ {
			for x := uint32(0); x < width; x++ {
				ch, attr := cons.Read(x+1, y+1)
				cells[y*width+x].ch = ch
				cells[y*width+x].attr = attr
			}
		}
	})

	palette := cons.Palette()
	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width; x++ {
			cell := cells[y*width+x]

			ch := rune(cell.ch)
			if cell.ch == 0 {
				ch = ' '
			}

			style := tcell.StyleDefault.
				Foreground(paletteColor(palette, cell.attr&0x0f)).
				Background(paletteColor(palette, cell.attr>>4))
			b.screen.SetContent(int(x), int(y), ch, nil, style)
		}
	}

	b.screen.Show()
}

func paletteColor(palette color.Palette, index uint8) tcell.Color {
	if int(index) >= len(palette) {
		return tcell.ColorDefault
	}

	rgba, ok := palette[index].(color.RGBA)
	if !ok {
		return tcell.ColorDefault
	}

	return tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
}
