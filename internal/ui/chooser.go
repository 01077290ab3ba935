package ui

// chooseRequest is a sprite choice the editor asked for
type chooseRequest struct {
	initial int
	prompt  string
	retry   func()
}

// promptChooser answers editor.ResourceChooser from a terminal prompt.
// The editor asks synchronously but the prompt needs a round trip through
// the event loop, so the first call records the request and declines.
// Once the user submits, the answer is armed and the editor operation is
// run again; the armed answer is consumed by that single call.
type promptChooser struct {
	pending *chooseRequest
	answer  *int
}

func (c *promptChooser) Choose(initial int, prompt string) (int, bool) {
	if c.answer != nil {
		v := *c.answer
		c.answer = nil
		return v, true
	}
	c.pending = &chooseRequest{initial: initial, prompt: prompt}
	return 0, false
}

// begin runs op and returns the request it raised, if any
func (c *promptChooser) begin(op func()) *chooseRequest {
	c.pending = nil
	op()
	req := c.pending
	c.pending = nil
	if req != nil {
		req.retry = op
	}
	return req
}

// resolve answers req with sprite and replays the operation
func (c *promptChooser) resolve(req *chooseRequest, sprite int) {
	if req == nil || req.retry == nil {
		return
	}
	c.answer = &sprite
	req.retry()
	c.answer = nil
	c.pending = nil
}
