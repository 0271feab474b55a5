// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package resolve

// LanguageFolder files an asset under the folder of its language, keeping
// only the asset type and the file name.
type LanguageFolder struct {
	Languages *LanguageMap
}

func (l LanguageFolder) Resolve(r Route) (string, error) {
	parts, err := segments(r.Source)
	if err != nil {
		return "", err
	}
	folder, err := l.Languages.Folder(r.LangID)
	if err != nil {
		return "", err
	}
	assetType, file := parts[len(parts)-2], parts[len(parts)-1]
	return folder + "/" + assetType + "/" + file, nil
}
