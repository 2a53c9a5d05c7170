package hostabi

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/recorder"
	"github.com/haraldreingruber-dedalus/line-follower-simulator/internal/stepper"
)

// moduleName is the import namespace the guest component links its
// host calls against (spec §4.F's operation table).
const moduleName = "line_follower_host"

// Instantiate registers every ABI operation as a host function on a
// fresh wazero host module and instantiates it against rt, so the
// guest module can import moduleName. There is no WIT-derived
// component-model binding available in this build (no bindgen toolchain
// in the retrieval pack — see DESIGN.md), so the ABI is exposed as
// plain core-wasm imports: scalar operations bind directly via
// wazero's reflection-based WithFunc, and the few operations that move
// byte buffers (read_sensor_blocking, poll_sensor, write_line,
// write_file) read/write the guest's own linear memory through
// api.Module.Memory() at a pointer+length the guest passes in.
func (h *Host) Instantiate(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	builder := rt.NewHostModuleBuilder(moduleName)

	builder.NewFunctionBuilder().
		WithFunc(func(context.Context, api.Module) uint32 { return h.CurrentTime() }).
		Export("current_time")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module, us uint32) { h.SleepBlockingFor(us) }).
		Export("sleep_blocking_for")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module, us uint32) { h.SleepBlockingUntil(us) }).
		Export("sleep_blocking_until")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, mod api.Module, kind uint32, start, count uint16, outPtr uint32) uint32 {
			data, err := h.ReadSensorBlocking(stepper.SensorKind(kind), start, count)
			if err != ErrNone {
				return uint32(err)
			}
			if !writeMemory(mod, outPtr, data) {
				return uint32(ErrInvalidRange)
			}
			return uint32(ErrNone)
		}).
		Export("read_sensor_blocking")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module, us uint32) uint64 { return h.SleepAsyncFor(us) }).
		Export("sleep_async_for")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module, us uint32) uint64 { return h.SleepAsyncUntil(us) }).
		Export("sleep_async_until")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module, kind uint32, start, count uint16) (uint64, uint32) {
			handle, err := h.ReadSensorAsync(stepper.SensorKind(kind), start, count)
			return handle, uint32(err)
		}).
		Export("read_sensor_async")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module, handle uint64) (uint32, uint32) {
			ready, err := h.PollTimer(handle)
			return boolToU32(ready), uint32(err)
		}).
		Export("poll_timer")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, mod api.Module, handle uint64, outPtr uint32) (uint32, uint32) {
			ready, data, err := h.PollSensor(handle)
			if err != ErrNone || !ready {
				return boolToU32(ready), uint32(err)
			}
			if !writeMemory(mod, outPtr, data) {
				return 0, uint32(ErrInvalidRange)
			}
			return 1, uint32(ErrNone)
		}).
		Export("poll_sensor")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module, handle uint64) uint32 { return uint32(h.ForgetHandle(handle)) }).
		Export("forget_handle")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module, left, right int32) { h.SetPower(int16(left), int16(right)) }).
		Export("set_power")

	builder.NewFunctionBuilder().
		WithFunc(func(context.Context, api.Module) uint32 { return boolToU32(h.GetEnabled()) }).
		Export("get_enabled")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module) { h.WaitEnabled() }).
		Export("wait_enabled")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module) { h.WaitDisabled() }).
		Export("wait_disabled")

	builder.NewFunctionBuilder().
		WithFunc(func(callCtx context.Context, mod api.Module, strPtr, strLen uint32) {
			s, ok := readMemoryString(mod, strPtr, strLen)
			if !ok {
				log.Ctx(callCtx).Warn().Msg("write_line: guest passed an out-of-bounds string")
				return
			}
			h.WriteLine(s)
		}).
		Export("write_line")

	// write_file's trailing schemaPtr/schemaLen/schemaCount triple carries
	// the optional CSV schema (spec §4.F write_file(name, bytes,
	// csv_schema?)): schemaCount==0 means no schema, otherwise schemaBuf
	// holds schemaCount back-to-back entries of [1 byte ColumnKind][1
	// byte nameLen][nameLen bytes of name], the same packed-buffer
	// substitute for a WIT record list used by setup()'s configuration
	// blob (see internal/config.DecodeBotConfiguration).
	builder.NewFunctionBuilder().
		WithFunc(func(callCtx context.Context, mod api.Module, namePtr, nameLen, dataPtr, dataLen, schemaPtr, schemaLen, schemaCount uint32) {
			name, ok1 := readMemoryString(mod, namePtr, nameLen)
			data, ok2 := mod.Memory().Read(dataPtr, dataLen)
			if !ok1 || !ok2 {
				log.Ctx(callCtx).Warn().Msg("write_file: guest passed an out-of-bounds buffer")
				return
			}
			var schema []recorder.CSVColumn
			if schemaCount > 0 {
				schemaBuf, ok3 := mod.Memory().Read(schemaPtr, schemaLen)
				cols, ok4 := decodeCSVSchema(schemaBuf, schemaCount)
				if !ok3 || !ok4 {
					log.Ctx(callCtx).Warn().Msg("write_file: guest passed an invalid csv schema")
					return
				}
				schema = cols
			}
			h.WriteFile(name, append([]byte(nil), data...), schema)
		}).
		Export("write_file")

	return builder.Instantiate(ctx)
}

func writeMemory(mod api.Module, ptr uint32, data []byte) bool {
	return mod.Memory().Write(ptr, data)
}

func readMemoryString(mod api.Module, ptr, length uint32) (string, bool) {
	b, ok := mod.Memory().Read(ptr, length)
	if !ok {
		return "", false
	}
	return string(b), true
}

// decodeCSVSchema parses count back-to-back [kind byte][nameLen
// byte][name bytes] entries out of buf, per write_file's schema wire
// format above.
func decodeCSVSchema(buf []byte, count uint32) ([]recorder.CSVColumn, bool) {
	cols := make([]recorder.CSVColumn, 0, count)
	off := 0
	for i := uint32(0); i < count; i++ {
		if off+2 > len(buf) {
			return nil, false
		}
		kind := buf[off]
		nameLen := int(buf[off+1])
		off += 2
		if off+nameLen > len(buf) {
			return nil, false
		}
		cols = append(cols, recorder.CSVColumn{
			Name: string(buf[off : off+nameLen]),
			Kind: recorder.ColumnKind(kind),
		})
		off += nameLen
	}
	return cols, true
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
