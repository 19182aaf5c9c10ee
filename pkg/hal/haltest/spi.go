package haltest

import "github.com/xanderflood/pihal/pkg/hal"

//SPI a mock SPI channel
type SPI struct {
	transfers [][]byte
	responses [][]byte
	cursor    int
	failing   bool
}

var _ hal.SPI = (*SPI)(nil)

func NewSPI() *SPI {
	return &SPI{}
}

//AddResponse queues data to be clocked in by the next unanswered transfer.
func (s *SPI) AddResponse(data []byte) {
	s.responses = append(s.responses, append([]byte{}, data...))
}

//SetFailure switches fault injection on or off. Unlike the GPIO and I2C
//mocks this is not sticky.
func (s *SPI) SetFailure(failing bool) {
	s.failing = failing
}

//TransferLog the outgoing contents of every successful transfer, in order
func (s *SPI) TransferLog() [][]byte {
	log := make([][]byte, len(s.transfers))
	for i, t := range s.transfers {
		log[i] = append([]byte{}, t...)
	}
	return log
}

//Transfer logs buf then overwrites its head with the next queued response.
//With the queue drained, buf comes back exactly as sent.
func (s *SPI) Transfer(buf []byte) error {
	if s.failing {
		return hal.ChannelFault(hal.ErrSimulated)
	}

	s.transfers = append(s.transfers, append([]byte{}, buf...))

	if s.cursor < len(s.responses) {
		copy(buf, s.responses[s.cursor])
		s.cursor++
	}
	return nil
}
