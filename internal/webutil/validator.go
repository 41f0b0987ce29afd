package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/ja" // 日本語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja" // 日本語翻訳
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"content":     "内容",
	"kind":        "種類",
	"meaning":     "意味",
	"context":     "例文",
	"was_correct": "回答の正誤",
	"target":      "語彙の件数",
	"topic_slots": "トピックの件数",
	"active":      "有効フラグ",
}

func translatedField(fe validator.FieldError) string {
	if name, ok := fieldNameTranslations[fe.Field()]; ok {
		return name
	}
	return fe.Field()
}

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	// JSONタグからフィールド名を取得する
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}
	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// 既定のメッセージをフィールドの日本語名で上書きする
	register := func(tag, msg string, withParam bool) {
		err := Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			var t string
			if withParam {
				t, _ = ut.T(tag, translatedField(fe), fe.Param())
			} else {
				t, _ = ut.T(tag, translatedField(fe))
			}
			return t
		})
		if err != nil {
			log.Fatal(err)
		}
	}
	register("required", "{0}は必須項目です。", false)
	register("oneof", "{0}は[{1}]のいずれかでなければなりません。", true)
	register("min", "{0}は{1}以上で入力してください。", true)
	register("max", "{0}は{1}以下で入力してください。", true)
}
