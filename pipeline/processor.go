package pipeline

import (
	"fmt"

	"github.com/piperkit/piper/errors"
)

// processBatchProcessor drains up to one batch from the pending queue and
// hands it to the handler. The handler routes every result itself; nothing
// is forwarded implicitly.
func (in *Instance) processBatchProcessor() error {
	batch := in.pending.Dequeue(in.BatchSize())
	if len(batch) == 0 {
		return nil
	}
	in.LogInfo(fmt.Sprintf("processing %d items", len(batch)), batch...)
	return in.runHandler(batch)
}

// runHandler invokes the handler with the instance, the batch, and the
// shared init args. Failures — returned or panicked — surface as
// HANDLER_FAILURE to whichever root operation is driving execution; the
// partial state the handler produced is kept so the caller may continue.
func (in *Instance) runHandler(batch []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.HandlerFailure(in.Path(), fmt.Errorf("panic: %v", r))
			in.engine.log.Error(in, "handler panicked", batch...)
		}
	}()

	if herr := in.handler(in, batch, in.InitArgs()...); herr != nil {
		in.engine.log.Error(in, "handler failed: "+herr.Error(), batch...)
		if errors.IsCode(herr, errors.ErrCodeHandlerFailure) {
			return herr
		}
		return errors.HandlerFailure(in.Path(), herr)
	}
	return nil
}
