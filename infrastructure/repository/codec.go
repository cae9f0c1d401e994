package repository

import (
	"fmt"
	"reflect"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// normalize deixa o registro com os mesmos tipos que terá depois de persistido em JSON
func normalize(data domain.Record) (domain.Record, error) {
	if data == nil {
		return domain.Record{}, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar registro: %w", err)
	}

	out := domain.Record{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("erro ao desserializar registro: %w", err)
	}
	return out, nil
}

// ToRecord converte uma entidade em registro, sem os campos controlados pelo armazenamento
func ToRecord(entity any) (domain.Record, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar entidade: %w", err)
	}

	rec := domain.Record{}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("erro ao converter entidade: %w", err)
	}

	if rec.ID() == "" {
		delete(rec, domain.FieldID)
	}
	if userID, _ := rec[domain.FieldUserID].(string); userID == "" {
		delete(rec, domain.FieldUserID)
	}
	delete(rec, domain.FieldCreatedAt)
	delete(rec, domain.FieldUpdatedAt)

	return rec, nil
}

// decode converte o registro na entidade, tolerando números em texto e datas só com dia
func decode[T any](rec domain.Record) (*T, error) {
	out := new(T)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToTimeHook,
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           out,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(map[string]any(rec)); err != nil {
		return nil, fmt.Errorf("registro %s ilegível: %w", rec.ID(), err)
	}
	return out, nil
}

func stringToTimeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	return utils.ParseTimestamp(data.(string))
}
