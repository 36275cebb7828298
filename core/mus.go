package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
)

// TurnMUS serializes Turn records in the MUS format for storage.
// Timestamps are stored with microsecond precision.
var TurnMUS = turnMUS{}

type turnMUS struct{}

func (s turnMUS) Marshal(v Turn, buf []byte) (n int) {
	n = ord.String.Marshal(v.Id, buf)
	n += ord.String.Marshal(v.ConversationID, buf[n:])
	n += raw.TimeUnixMicro.Marshal(v.Timestamp, buf[n:])
	n += ord.String.Marshal(v.UserQuestion, buf[n:])
	n += ord.String.Marshal(v.Answer, buf[n:])
	return n
}

func (s turnMUS) Unmarshal(buf []byte) (v Turn, n int, err error) {
	var n1 int
	v.Id, n, err = ord.String.Unmarshal(buf)
	if err != nil {
		return
	}
	v.ConversationID, n1, err = ord.String.Unmarshal(buf[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp, n1, err = raw.TimeUnixMicro.Unmarshal(buf[n:])
	n += n1
	if err != nil {
		return
	}
	v.UserQuestion, n1, err = ord.String.Unmarshal(buf[n:])
	n += n1
	if err != nil {
		return
	}
	v.Answer, n1, err = ord.String.Unmarshal(buf[n:])
	n += n1
	return
}

func (s turnMUS) Size(v Turn) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.ConversationID)
	size += raw.TimeUnixMicro.Size(v.Timestamp)
	size += ord.String.Size(v.UserQuestion)
	size += ord.String.Size(v.Answer)
	return size
}

func (s turnMUS) Skip(buf []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(buf)
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(buf[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(buf[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(buf[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(buf[n:])
	n += n1
	return
}
