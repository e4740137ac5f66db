package ml

import "sort"

// UnknownTopicCode is returned for topics that were not part of the fitted
// vocabulary.
const UnknownTopicCode = -1

// TopicEncoder maps topic names to dense integer codes. It is fit once over
// the historical corpus and read-only afterwards; the fitted state travels
// inside the model artifact so training and inference always share one
// vocabulary.
type TopicEncoder struct {
	Codes map[string]int `json:"codes"`
}

// FitTopicEncoder assigns a code to every distinct non-empty topic. Codes are
// allocated in sorted topic order, so the same corpus always produces the
// same encoding regardless of entry order.
func FitTopicEncoder(topics []string) *TopicEncoder {
	distinct := make(map[string]struct{}, len(topics))
	for _, topic := range topics {
		if topic == "" {
			continue
		}
		distinct[topic] = struct{}{}
	}

	ordered := make([]string, 0, len(distinct))
	for topic := range distinct {
		ordered = append(ordered, topic)
	}
	sort.Strings(ordered)

	codes := make(map[string]int, len(ordered))
	for i, topic := range ordered {
		codes[topic] = i
	}

	return &TopicEncoder{Codes: codes}
}

// Encode returns the code for topic, or UnknownTopicCode when the topic was
// not seen during fitting.
func (e *TopicEncoder) Encode(topic string) int {
	if e == nil {
		return UnknownTopicCode
	}
	if code, ok := e.Codes[topic]; ok {
		return code
	}
	return UnknownTopicCode
}

// Len reports the size of the fitted vocabulary.
func (e *TopicEncoder) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Codes)
}
