package kbd

import (
	"reflect"
	"testing"
)

func TestDecoder(t *testing.T) {
	specs := []struct {
		descr string
		input []byte
		exp   []Event
	}{
		{
			"plain keys",
			[]byte{0x1e, 0x30, 0x02, 0x39},
			[]Event{{Char: 'a'}, {Char: 'b'}, {Char: '1'}, {Char: ' '}},
		},
		{
			"shift applies while held",
			[]byte{0x2a, 0x1e, 0x02, 0xaa, 0x1e},
			[]Event{{Char: 'A'}, {Char: '!'}, {Char: 'a'}},
		},
		{
			"right shift",
			[]byte{0x36, 0x33, 0xb6, 0x33},
			[]Event{{Char: '<'}, {Char: ','}},
		},
		{
			"caps lock flips letter case picked by shift",
			[]byte{0x3a, 0xba, 0x1e, 0x2a, 0x1e, 0x02, 0xaa},
			[]Event{{Char: 'A'}, {Char: 'a'}, {Char: '!'}},
		},
		{
			"ctrl with a letter emits the C0 control code",
			[]byte{0x1d, 0x2e, 0x2f, 0x9d, 0x2e},
			[]Event{{Char: 0x03}, {Char: 0x16}, {Char: 'c'}},
		},
		{
			"extended ctrl",
			[]byte{0xe0, 0x1d, 0x2e, 0xe0, 0x9d, 0x2e},
			[]Event{{Char: 0x03}, {Char: 'c'}},
		},
		{
			"special keys",
			[]byte{0x01, 0x0e, 0x0f, 0x1c},
			[]Event{{Char: 0x1b}, {Char: 0x08}, {Char: '\t'}, {Char: '\n'}},
		},
		{
			"arrow keys",
			[]byte{0xe0, 0x48, 0xe0, 0x4b, 0xe0, 0x4d, 0xe0, 0x50},
			[]Event{{Key: KeyUp}, {Key: KeyLeft}, {Key: KeyRight}, {Key: KeyDown}},
		},
		{
			"arrow release produces no event",
			[]byte{0xe0, 0xcb},
			nil,
		},
		{
			"extended delete",
			[]byte{0xe0, 0x53},
			[]Event{{Char: 0x7f}},
		},
		{
			"unmapped keys are ignored",
			[]byte{0x3b, 0xbb},
			nil,
		},
	}

	for specIndex, spec := range specs {
		var (
			d   Decoder
			got []Event
		)

		for _, sc := range spec.input {
			if event, ok := d.Feed(sc); ok {
				got = append(got, event)
			}
		}

		if !reflect.DeepEqual(got, spec.exp) {
			t.Errorf("[spec %d] %s: expected events %v; got %v", specIndex, spec.descr, spec.exp, got)
		}
	}
}
