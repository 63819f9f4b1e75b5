package messaging

import (
	"github.com/Await-0x/RealmsWorld/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
)

// CollectionPublisher ships collection snapshots to every instance
// listening on the change topic of its chain.
type CollectionPublisher struct {
	conn  *amqp.Connection
	chain string
}

func NewCollectionPublisher(conn *amqp.Connection, chain string) (*CollectionPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()
	if err = DefineTopic(ch, chain, CollectionsChanged); err != nil {
		return nil, err
	}
	return &CollectionPublisher{conn: conn, chain: chain}, nil
}

func (p *CollectionPublisher) PublishCollections(snapshots []types.CollectionSnapshot) error {
	return SendChange(p.conn, p.chain, CollectionsChanged, snapshots)
}

func ListenToCollections(conn *amqp.Connection, chain string, handle func(body []byte) error) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	if err = DefineTopic(ch, chain, CollectionsChanged); err != nil {
		ch.Close()
		return err
	}
	return ListenToTopic(ch, chain, CollectionsChanged, func(d amqp.Delivery) error {
		return handle(d.Body)
	})
}
