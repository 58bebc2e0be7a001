package app

import "testing"

func TestWindowSizeIsScaledLayout(t *testing.T) {
	a := &App{width: 320, height: 224}

	w, h := a.WindowSize()
	if w != 320*WindowScale || h != 224*WindowScale {
		t.Errorf("Expected %dx%d window, got %dx%d", 320*WindowScale, 224*WindowScale, w, h)
	}
	lw, lh := a.Layout(w, h)
	if lw != 320 || lh != 224 {
		t.Errorf("Expected 320x224 layout, got %dx%d", lw, lh)
	}
}
