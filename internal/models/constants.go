package models

const (
	AgentCustomer   = "Customer"
	AgentRider      = "Rider"
	AgentPlatform   = "Platform"
	AgentGovernment = "Government"

	ActionDeliver  = "deliver"
	ActionRest     = "rest"
	ActionComplain = "complain"
	ActionOffDuty  = "off_duty"

	DecisionSourceRule     = "rule"
	DecisionSourceLLM      = "llm"
	DecisionSourceFallback = "fallback"

	DecisionModeRule = "rule"
	DecisionModeLLM  = "llm"

	TopicAgentActions = "agent_actions"
	TopicRiderStats   = "rider_stats"
	TopicDailyStats   = "daily_stats"
	TopicFinalReport  = "final_report"
)
