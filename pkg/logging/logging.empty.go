// +build logless

package logging

var Log = EmptyLog{}

// EmptyLog discards everything it's given; every method returns itself
// so call chains compile unchanged whether or not logless is set.
type EmptyLog struct{}

func (l EmptyLog) Debug() EmptyLog { return l }
func (l EmptyLog) Error() EmptyLog { return l }
func (l EmptyLog) Warn() EmptyLog  { return l }
func (l EmptyLog) Info() EmptyLog  { return l }

func (l EmptyLog) Msg(string) EmptyLog { return l }
func (l EmptyLog) Err(error) EmptyLog  { return l }

func (l EmptyLog) Int(string, int) EmptyLog       { return l }
func (l EmptyLog) Str(string, string) EmptyLog    { return l }
func (l EmptyLog) Uint(string, uint) EmptyLog     { return l }
func (l EmptyLog) Uint32(string, uint32) EmptyLog { return l }
func (l EmptyLog) Float32(string, float32) EmptyLog { return l }
