package tilekit

import "testing"

func TestPointerInput_InjectClick(t *testing.T) {
	in := &PointerInput{}
	in.InjectClick(10, 20)
	if in.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", in.Pending())
	}

	in.Update()
	ev := in.Events()
	if len(ev) != 1 || ev[0].Type != PointerDown || ev[0].Position != Pos(10, 20) {
		t.Fatalf("frame 1 events = %+v", ev)
	}
	if !in.IsDown(MouseButtonLeft) {
		t.Error("left button should be down after press")
	}

	in.Update()
	ev = in.Events()
	if len(ev) != 1 || ev[0].Type != PointerUp || ev[0].Start != Pos(10, 20) {
		t.Fatalf("frame 2 events = %+v", ev)
	}
	if in.IsDown(MouseButtonLeft) {
		t.Error("left button should be up after release")
	}
	if in.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", in.Pending())
	}
}

func TestPointerInput_ReleaseRemembersStart(t *testing.T) {
	in := &PointerInput{}
	in.InjectPress(1, 2)
	in.InjectRelease(30, 40)
	in.Update()
	in.Update()
	ev := in.Events()
	if len(ev) != 1 {
		t.Fatalf("events = %+v", ev)
	}
	if ev[0].Start != Pos(1, 2) || ev[0].Position != Pos(30, 40) {
		t.Errorf("release = %+v, want start (1,2) at (30,40)", ev[0])
	}
	if in.Position() != Pos(30, 40) {
		t.Errorf("Position = %v", in.Position())
	}
}

func TestPointerInput_HeldButtonEmitsNothing(t *testing.T) {
	in := &PointerInput{}
	in.InjectPress(5, 5)
	in.InjectPress(6, 6)
	in.Update()
	in.Update()
	if len(in.Events()) != 0 {
		t.Errorf("second press while held produced %+v", in.Events())
	}
	if in.Position() != Pos(6, 6) {
		t.Errorf("Position = %v, want (6,6)", in.Position())
	}
}

func TestPointerInput_ButtonsAreIndependent(t *testing.T) {
	in := &PointerInput{}
	in.InjectButton(0, 0, MouseButtonLeft, true)
	in.InjectButton(0, 0, MouseButtonRight, true)
	in.Update()
	in.Update()
	if !in.IsDown(MouseButtonLeft) || !in.IsDown(MouseButtonRight) {
		t.Error("both buttons should be held")
	}
	if in.IsDown(MouseButtonMiddle) {
		t.Error("middle button should be up")
	}
	ev := in.Events()
	if len(ev) != 1 || ev[0].Button != MouseButtonRight {
		t.Errorf("frame 2 events = %+v", ev)
	}
}

func TestPointerInput_InvalidButtonIgnored(t *testing.T) {
	in := &PointerInput{}
	in.InjectButton(0, 0, mouseButtonCount, true)
	if in.Pending() != 0 {
		t.Error("invalid button should not be queued")
	}
	if in.IsDown(mouseButtonCount) {
		t.Error("IsDown should be false for an invalid button")
	}
}

func TestPointerInput_PollWhenQueueEmpty(t *testing.T) {
	var st buttonState
	in := &PointerInput{poll: func() (ScreenPosition, buttonState) { return Pos(7, 8), st }}

	st[MouseButtonMiddle] = true
	in.InjectClick(1, 1)
	in.Update()
	if in.Position() != Pos(1, 1) {
		t.Fatal("injected events should take priority over polling")
	}
	in.Update()
	in.Update()
	if in.Position() != Pos(7, 8) {
		t.Errorf("Position = %v, want polled (7,8)", in.Position())
	}
	ev := in.Events()
	if len(ev) != 1 || ev[0].Type != PointerDown || ev[0].Button != MouseButtonMiddle {
		t.Errorf("polled events = %+v", ev)
	}
}

func TestPointerInput_ZeroValueIdle(t *testing.T) {
	in := &PointerInput{}
	in.Update()
	if len(in.Events()) != 0 || in.Position() != Pos(0, 0) {
		t.Error("idle input should produce nothing")
	}
}
