// Package crc16 implements the CRC16-CCITT checksum that seals EMVCo
// merchant-presented QR payloads (QRIS tag 63).
package crc16

import "fmt"

// Sum computes CRC16-CCITT over data: initial register 0xFFFF, polynomial
// 0x1021, no bit reflection.
func Sum(data []byte) uint16 {
	reg := uint16(0xFFFF)
	for _, b := range data {
		reg ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if reg&0x8000 != 0 {
				reg = reg<<1 ^ 0x1021
			} else {
				reg <<= 1
			}
		}
	}
	return reg
}

// Hex returns the checksum of data as 4 uppercase hex digits, zero padded.
func Hex(data []byte) string {
	return fmt.Sprintf("%04X", Sum(data))
}
