package fonts

import "testing"

func TestFace(t *testing.T) {
	for _, b := range []bool{false, true} {
		f, err := Face(11, b)
		if err != nil {
			t.Fatalf("Face(11, %v): %v", b, err)
		}
		if h := f.Metrics().Height; h <= 0 {
			t.Errorf("Face(11, %v) height = %v", b, h)
		}
	}
}
