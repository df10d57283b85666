package usart

import "context"

// WaitReadableContext blocks until a byte is available or ctx is done.
func (d *Device) WaitReadableContext(ctx context.Context) error {
	for !d.RxReady() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	return nil
}

// RecvByteContext is Rx bounded by ctx.
func (d *Device) RecvByteContext(ctx context.Context) (byte, error) {
	if err := d.WaitReadableContext(ctx); err != nil {
		return 0, err
	}
	return d.regs.Load(UDR0), nil
}

// WaitWritableContext blocks until the transmit buffer is empty or ctx is done.
func (d *Device) WaitWritableContext(ctx context.Context) error {
	for !d.TxReady() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	return nil
}

// SendByteContext is Tx bounded by ctx.
func (d *Device) SendByteContext(ctx context.Context, b byte) error {
	if err := d.WaitWritableContext(ctx); err != nil {
		return err
	}
	d.regs.Store(UDR0, b)
	return nil
}
