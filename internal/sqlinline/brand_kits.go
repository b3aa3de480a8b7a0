package sqlinline

const QInsertBrandKit = `--sql 176889fb-83bd-4de5-8b3a-b162696f21d8
insert into brand_kits (id, user_id, name, logo_url, primary_color, secondary_color, additional_colors, font_family, tone_of_voice, industry, language, created_at)
values ($1::uuid, $2::uuid, $3, $4, $5, $6, $7::text[], $8, $9, $10, $11, now())
returning created_at;
`

const QUpdateBrandKit = `--sql f0bd4816-c0bc-4e36-8a58-4a382c4cf3b4
update brand_kits set
    name = $2,
    logo_url = $3,
    primary_color = $4,
    secondary_color = $5,
    additional_colors = $6::text[],
    font_family = $7,
    tone_of_voice = $8,
    industry = $9,
    language = $10
where id = $1::uuid;
`

const QSelectBrandKitByID = `--sql 8eb4fa2f-9869-4f99-86f4-a7007b843987
select id::text, user_id::text, name, logo_url, primary_color, secondary_color, additional_colors, font_family, tone_of_voice, industry, language, created_at
from brand_kits
where id = $1::uuid
limit 1;
`

const QDeleteBrandKit = `--sql a8a7e9a4-28f7-4a08-85e6-367a8cb0e329
delete from brand_kits
where id = $1::uuid;
`

const QListBrandKitsByUser = `--sql 361469f9-f6ee-4de1-87c5-2505da091258
select id::text, user_id::text, name, logo_url, primary_color, secondary_color, additional_colors, font_family, tone_of_voice, industry, language, created_at
from brand_kits
where user_id = $1::uuid
order by created_at desc;
`
