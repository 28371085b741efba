package consumer

import "github.com/adjust/rmq/v5"

// StatsHTML renders the rmq overview of every open queue.
func StatsHTML(connection rmq.Connection, layout string, refresh string) (string, error) {
	queues, err := connection.GetOpenQueues()
	if err != nil {
		return "", err
	}

	stats, err := connection.CollectStats(queues)
	if err != nil {
		return "", err
	}

	return stats.GetHtml(layout, refresh), nil
}
