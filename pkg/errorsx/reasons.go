package errorsx

// ReasonCode is a short machine-readable error reason.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	ReasonVoiceConfig ReasonCode = "voice_config"
	ReasonAttention   ReasonCode = "attention"

	ReasonListen   ReasonCode = "listen"
	ReasonAwaitKey ReasonCode = "await_key"
	ReasonSpeak    ReasonCode = "speak"

	ReasonLLMComplete ReasonCode = "llm_complete"

	ReasonRobotConnect ReasonCode = "robot_connect"
	ReasonRobotSend    ReasonCode = "robot_send"
	ReasonRobotClosed  ReasonCode = "robot_closed"
)
