package periphhal

import (
	"periph.io/x/periph/conn"

	"github.com/xanderflood/pihal/pkg/hal"
)

//SPI a connected periph SPI port
type SPI struct {
	conn conn.Conn
}

var _ hal.SPI = (*SPI)(nil)

func NewSPI(c conn.Conn) *SPI {
	return &SPI{conn: c}
}

func (s *SPI) Transfer(buf []byte) error {
	w := append([]byte(nil), buf...)
	if err := s.conn.Tx(w, buf); err != nil {
		return hal.ChannelFault(err)
	}
	return nil
}
